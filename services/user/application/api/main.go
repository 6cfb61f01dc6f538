package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/config"
	"github.com/ghuser/sweetshop/services/user/application/handlers"
	appsvcs "github.com/ghuser/sweetshop/services/user/application/services"
)

// AuthRoutes registers the authentication endpoints on the provided chi
// router. These routes must stay outside the RequireAuth middleware.
func AuthRoutes(r chi.Router, a *app.Application, cfg *config.Config) {
	svcs := appsvcs.New(a, cfg)
	RegisterAuthRoutes(r, svcs, a)
}

// RegisterAuthRoutes wires the handlers against an existing service
// container. Split from AuthRoutes so tests can inject fakes.
func RegisterAuthRoutes(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(svcs).Execute)
		r.Post("/login", handlers.NewLoginHandler(svcs, a.SessionStore, a.Logger).Execute)
		r.Post("/logout", handlers.NewLogoutHandler(a.SessionStore).Execute)
	})
}
