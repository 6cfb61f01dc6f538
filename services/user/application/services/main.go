package services

import (
	"time"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/config"
	"github.com/ghuser/sweetshop/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	User *UserService
}

// New wires the user application service with infrastructure from the
// Application container and the token issuer built from config.
func New(a *app.Application, cfg *config.Config) *Services {
	repo := postgres.NewUserRepository(a.Db)
	tokens := auth.NewTokenIssuer(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.JWTTTLMinutes)*time.Minute,
		cfg.ServiceName,
	)
	return &Services{
		User: NewUserService(repo, tokens),
	}
}
