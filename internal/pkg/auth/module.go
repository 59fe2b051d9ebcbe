package auth

import (
	"github.com/polkiloo/storefront/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newAdminKeyVerifier),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{})
}

type verifierParams struct {
	fx.In

	Config *config.Config
	Hasher PasswordHasher
}

func newAdminKeyVerifier(p verifierParams) *AdminKeyVerifier {
	return NewAdminKeyVerifier(p.Hasher, p.Config.AdminKeyHash)
}
