package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/services/sweet/application/handlers"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// SweetRoutes registers sweet inventory endpoints on the provided chi router.
// The caller mounts these behind the authentication middleware.
func SweetRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	RegisterSweetRoutes(r, svcs)
}

// RegisterSweetRoutes wires the handlers against an existing service
// container. Split from SweetRoutes so tests can inject fakes.
func RegisterSweetRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/sweets", func(r chi.Router) {
		r.Post("/", handlers.NewPostSweetHandler(svcs).Execute)
		r.Get("/", handlers.NewListSweetsHandler(svcs).Execute)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetSweetHandler(svcs).Execute)
			r.Put("/", handlers.NewPutSweetHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteSweetHandler(svcs).Execute)
			r.Post("/purchase", handlers.NewPurchaseSweetHandler(svcs).Execute)
			r.Post("/restock", handlers.NewRestockSweetHandler(svcs).Execute)
		})
	})
}
