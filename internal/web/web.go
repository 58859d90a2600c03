// Package web implements the server-rendered HTML surface: order listings,
// add/edit forms, search, and the shift revenue report.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler serves the HTML pages, delegating business logic to the order
// service.
type Handler struct {
	orders *order.Service
	tmpl   *template.Template
}

// NewHandler parses the embedded templates and constructs the web Handler.
func NewHandler(orders *order.Service) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Handler{orders: orders, tmpl: tmpl}, nil
}

// render executes the named template into a buffer first so a template error
// becomes a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		zctx.From(r.Context()).Error("render template",
			zap.String("template", name),
			zap.Error(err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
