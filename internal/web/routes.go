package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the HTML routes to the given router. Paths keep their
// trailing slashes, matching the links rendered in the pages.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/orders/", http.StatusFound)
	})

	r.Get("/orders/", h.List)
	r.Get("/orders/add/", h.Add)
	r.Post("/orders/add/", h.Add)
	r.Get("/orders/search/", h.Search)
	r.Get("/orders/{id}/", h.Detail)
	r.Get("/orders/{id}/edit/", h.Edit)
	r.Post("/orders/{id}/edit/", h.Edit)
	r.Get("/orders/{id}/delete/", h.Delete)
	r.Delete("/orders/{id}/delete/", h.Delete)
	r.Get("/revenue/", h.Revenue)
}
