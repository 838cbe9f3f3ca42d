package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Minimum secret lengths. Shorter secrets are a startup error, not a warning:
// both tokens and the legacy admin header derive their security from them.
const (
	MinSigningSecretLen = 32
	MinAdminSecretLen   = 16
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// SigningSecret signs access and refresh tokens. Rotating it invalidates
	// every outstanding token, which is the only revocation mechanism.
	SigningSecret string
	// AdminSecret is the legacy shared-secret header value still accepted by
	// older internal tooling.
	AdminSecret string
	// AdminEmails lists the identities allowed to request login codes.
	AdminEmails []string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// CodeStore selects the verification code backend: "memory" (default,
	// pending codes are lost on restart) or "dynamo".
	CodeStore string
	CodeTTL   time.Duration
	// CodeResendCooldown throttles repeat code requests per email.
	CodeResendCooldown time.Duration

	RateLimitBudget int
	RateLimitWindow time.Duration

	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	VerificationCodes string
	Settings          string
}

// Load reads all configuration from environment variables. Missing or
// too-short secrets are returned as errors so the caller refuses to serve.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		SigningSecret: os.Getenv("SIGNING_SECRET"),
		AdminSecret:   os.Getenv("ADMIN_SECRET"),
		AdminEmails:   splitList(os.Getenv("ADMIN_EMAILS")),

		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_HOURS", 24)) * time.Hour,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_HOURS", 168)) * time.Hour,

		CodeStore:          getEnv("VERIFICATION_STORE", "memory"),
		CodeTTL:            time.Duration(getEnvInt("VERIFICATION_CODE_TTL_SECONDS", 600)) * time.Second,
		CodeResendCooldown: time.Duration(getEnvInt("VERIFICATION_RESEND_COOLDOWN_SECONDS", 60)) * time.Second,

		RateLimitBudget: getEnvInt("RATE_LIMIT_BUDGET", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,

		CacheTTL:             time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		CacheCleanupInterval: time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_SECONDS", 60)) * time.Second,

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			VerificationCodes: getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "verification_codes"),
			Settings:          getEnv("DYNAMO_TABLE_SETTINGS", "store_settings"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if len(cfg.SigningSecret) < MinSigningSecretLen {
		return nil, fmt.Errorf("SIGNING_SECRET must be at least %d bytes", MinSigningSecretLen)
	}
	if len(cfg.AdminSecret) < MinAdminSecretLen {
		return nil, fmt.Errorf("ADMIN_SECRET must be at least %d bytes", MinAdminSecretLen)
	}
	if len(cfg.AdminEmails) == 0 {
		return nil, fmt.Errorf("ADMIN_EMAILS must list at least one address")
	}
	if cfg.CodeStore != "memory" && cfg.CodeStore != "dynamo" {
		return nil, fmt.Errorf("VERIFICATION_STORE must be \"memory\" or \"dynamo\", got %q", cfg.CodeStore)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
