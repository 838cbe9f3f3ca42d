package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shop-access-core/internal/domain"
	jwtinfra "github.com/shop-access-core/internal/infrastructure/jwt"
	"github.com/shop-access-core/internal/pkg/otp"
	"github.com/shop-access-core/internal/pkg/validate"
)

// RequestCodeInput is the request-code payload.
type RequestCodeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ExchangeCodeInput is the exchange-code payload.
type ExchangeCodeInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// CodeStore holds one-time login codes. Implementations must make
// Put/VerifyAndConsume atomic per email.
type CodeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	VerifyAndConsume(ctx context.Context, email, supplied string) (bool, error)
}

// CodeSender is the external delivery collaborator; it receives the
// generated code and owns getting it to the admin.
type CodeSender interface {
	SendCode(to, code string) error
}

// TokenIssuer mints and redeems signed token pairs.
type TokenIssuer interface {
	Issue(email string, isAdmin bool) (*jwtinfra.TokenPair, error)
	Refresh(refreshToken string) (*jwtinfra.TokenPair, error)
}

type Service interface {
	RequestCode(ctx context.Context, email string) error
	ExchangeCode(ctx context.Context, email, code string) (*jwtinfra.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*jwtinfra.TokenPair, error)
}

// ServiceDeps wires the login flow.
type ServiceDeps struct {
	Codes          CodeStore
	Sender         CodeSender
	Tokens         TokenIssuer
	AdminEmails    []string
	CodeTTL        time.Duration
	ResendCooldown time.Duration
}

type service struct {
	codes     CodeStore
	sender    CodeSender
	tokens    TokenIssuer
	admins    map[string]struct{}
	codeTTL   time.Duration
	cooldowns *cooldown
}

func NewService(deps ServiceDeps) Service {
	admins := make(map[string]struct{}, len(deps.AdminEmails))
	for _, email := range deps.AdminEmails {
		admins[NormalizeEmail(email)] = struct{}{}
	}
	return &service{
		codes:     deps.Codes,
		sender:    deps.Sender,
		tokens:    deps.Tokens,
		admins:    admins,
		codeTTL:   deps.CodeTTL,
		cooldowns: newCooldown(deps.ResendCooldown),
	}
}

// NormalizeEmail lowercases and trims an address; every store key and admin
// lookup goes through this so "Admin@Shop.COM " and "admin@shop.com" match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestCode generates and stores a fresh code for email and hands it to
// the delivery collaborator. Unknown addresses return nil without sending so
// the endpoint cannot be used to probe which emails are admins.
func (s *service) RequestCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if !validate.Email(email) {
		return fmt.Errorf("invalid email address: %w", domain.ErrBadRequest)
	}
	if _, ok := s.admins[email]; !ok {
		slog.Info("login code requested for unknown address", "email", email)
		return nil
	}
	if !s.cooldowns.allow(email) {
		return fmt.Errorf("code recently sent, retry later: %w", domain.ErrRateLimited)
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, email, code, s.codeTTL); err != nil {
		return fmt.Errorf("store login code: %w", err)
	}
	if err := s.sender.SendCode(email, code); err != nil {
		return fmt.Errorf("deliver login code: %w", err)
	}
	slog.Info("login code issued", "email", email)
	return nil
}

// ExchangeCode redeems a code exactly once and mints a token pair. Any
// rejection — no code, expired, wrong guess — surfaces as the same
// unauthorized error.
func (s *service) ExchangeCode(ctx context.Context, email, code string) (*jwtinfra.TokenPair, error) {
	email = NormalizeEmail(email)
	ok, err := s.codes.VerifyAndConsume(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("verify login code: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
	}
	pair, err := s.tokens.Issue(email, true)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	slog.Info("admin session issued", "email", email)
	return pair, nil
}

func (s *service) Refresh(_ context.Context, refreshToken string) (*jwtinfra.TokenPair, error) {
	return s.tokens.Refresh(refreshToken)
}
