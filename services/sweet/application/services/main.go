package services

import (
	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/cache"
	"github.com/ghuser/sweetshop/services/sweet/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Sweet *SweetService
}

// New wires all sweet application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewSweetRepository(a.Db, a.EventBus)
	sweetCache := cache.NewSweetCache(a.Redis)
	return &Services{
		Sweet: NewSweetService(repo, sweetCache),
	}
}
