package http

import (
	"github.com/shop-access-core/internal/application/auth"
	"github.com/shop-access-core/internal/application/settings"
	"github.com/shop-access-core/internal/infrastructure/cache"
	jwtinfra "github.com/shop-access-core/internal/infrastructure/jwt"
	"github.com/shop-access-core/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Codes        auth.CodeStore
	Mailer       smtp.Mailer
	JWTProvider  *jwtinfra.Provider
	Cache        *cache.Cache
	Invalidator  *cache.Invalidator
	SettingsRepo settings.Repo
}
