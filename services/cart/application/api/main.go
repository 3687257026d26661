package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cartengine/services/cart/application/handlers"
	appsvcs "github.com/ghuser/cartengine/services/cart/application/services"
)

// CartRoutes registers cart endpoints on the provided chi router.
func CartRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handlers.NewGetCartHandler(svcs).Execute)
			r.Route("/items", func(r chi.Router) {
				r.Post("/", handlers.NewPostCartItemHandler(svcs).Execute)
				r.Delete("/{name}", handlers.NewDeleteCartItemHandler(svcs).Execute)
			})
		})
	})
}
