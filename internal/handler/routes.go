package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the /api router. Trailing slashes are stripped so both
// /api/orders and /api/orders/ resolve.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/search", h.SearchOrders)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetOrder)
			r.Patch("/", h.UpdateOrder)
			r.Put("/", h.UpdateOrder)
			r.Delete("/", h.DeleteOrder)
		})
	})
	r.Get("/revenue", h.Revenue)

	return r
}
