package jwtinfra

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shop-access-core/internal/domain"
	"github.com/shop-access-core/internal/pkg/id"
)

// Claims holds the JWT payload fields.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh token pair minted from one set of claims.
// AccessExpiresAt is returned for client bookkeeping only; the tokens carry
// their own expiry.
type TokenPair struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"expires_at"`
}

// Provider signs and verifies HS256 JWTs with a single process-wide secret.
// It is stateless per call and safe for concurrent use. Tokens are not stored
// server-side: rotating the secret is the only revocation mechanism, and a
// refresh token stays valid until its own expiry even after being used.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewProvider(secret string, accessTTL, refreshTTL time.Duration) *Provider {
	return &Provider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue mints an access/refresh pair for the identity. Both tokens share one
// jti so the pair can be correlated in logs.
func (p *Provider) Issue(email string, isAdmin bool) (*TokenPair, error) {
	now := p.now()
	jti := id.New()

	accessExpiresAt := now.Add(p.accessTTL)
	access, err := p.sign(email, isAdmin, jti, now, accessExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := p.sign(email, isAdmin, jti, now, now.Add(p.refreshTTL))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: accessExpiresAt,
	}, nil
}

// Verify checks signature and expiry. Any failure — malformed token, bad
// signature, expired — collapses into the same unauthorized error so callers
// cannot probe which check failed; the specific cause is logged at debug.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return p.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		slog.Debug("token rejected", "err", err)
		return nil, fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

// Refresh redeems a refresh token for a fresh pair. Only admin claims can
// refresh. The redeemed token is not invalidated (stateless design).
func (p *Provider) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := p.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin {
		return nil, fmt.Errorf("refresh requires admin claims: %w", domain.ErrUnauthorized)
	}
	return p.Issue(claims.Email, true)
}

func (p *Provider) sign(email string, isAdmin bool, jti string, now, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
