package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
)

type listPage struct {
	Orders []order.Order
}

type detailPage struct {
	Order *order.Order
	Error string
}

type addPage struct {
	Error       string
	TableNumber string
	Items       string
}

type editPage struct {
	Order    *order.Order
	Statuses []order.Status
	Error    string
}

type searchPage struct {
	Orders      []order.Order
	Error       string
	TableNumber string
	Status      string
}

type revenuePage struct {
	TotalRevenue decimal.Decimal
}

// List serves GET /orders/ with an optional ?status= filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), order.Status(r.URL.Query().Get("status")))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "order_list.html", listPage{Orders: orders})
}

// Detail serves GET /orders/{id}/.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, r, "order_detail.html", detailPage{Order: o})
}

// Add serves GET and POST /orders/add/: the create form and its submission.
// A failed validation re-renders the form with the entered values so the
// waiter does not retype the whole order.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, "order_add.html", addPage{})
		return
	}

	tableNumberRaw := strings.TrimSpace(r.PostFormValue("table_number"))
	itemsRaw := strings.TrimSpace(r.PostFormValue("items"))

	page := addPage{TableNumber: tableNumberRaw, Items: itemsRaw}

	tableNumber, err := order.ParseTableNumber(tableNumberRaw)
	if err != nil {
		page.Error = err.Error()
		h.render(w, r, "order_add.html", page)
		return
	}

	items, err := order.ParseItems(itemsRaw)
	if err != nil {
		page.Error = err.Error()
		h.render(w, r, "order_add.html", page)
		return
	}

	if _, err := h.orders.Create(r.Context(), order.CreateRequest{
		TableNumber: tableNumber,
		Items:       items,
	}); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/", http.StatusSeeOther)
}

// Edit serves GET and POST /orders/{id}/edit/: the status form and its
// submission. Only the status can change after creation.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}

	page := editPage{Order: o, Statuses: order.Statuses}

	if r.Method != http.MethodPost {
		h.render(w, r, "order_edit.html", page)
		return
	}

	status := strings.TrimSpace(r.PostFormValue("status"))
	updated, err := h.orders.UpdateStatus(r.Context(), o.ID, order.Status(status))
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			page.Error = verr.Message
			h.render(w, r, "order_edit.html", page)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+strconv.FormatInt(updated.ID, 10)+"/", http.StatusSeeOther)
}

// Delete serves GET and DELETE /orders/{id}/delete/. Deleting a paid order
// is refused on this path too; the detail page is re-rendered with the
// refusal message.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), o.ID); err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			h.render(w, r, "order_detail.html", detailPage{Order: o, Error: verr.Message})
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/", http.StatusSeeOther)
}

// Search serves GET /orders/search/ filtering by table number and/or status.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	tableNumberRaw := strings.TrimSpace(r.URL.Query().Get("table_number"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	page := searchPage{TableNumber: tableNumberRaw, Status: status}

	var f order.Filter
	if tableNumberRaw != "" {
		tableNumber, err := order.ParseTableNumber(tableNumberRaw)
		if err != nil {
			page.Error = err.Error()
			h.render(w, r, "order_search.html", page)
			return
		}
		f.TableNumber = tableNumber
	}
	f.Status = order.Status(status)

	orders, err := h.orders.Search(r.Context(), f)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	page.Orders = orders
	h.render(w, r, "order_search.html", page)
}

// Revenue serves GET /revenue/: the total over paid orders for the shift.
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.orders.RevenueForShift(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "revenue_for_shift.html", revenuePage{TotalRevenue: revenue})
}

// lookup resolves the {id} path parameter to an order, responding with 404
// when it does not resolve.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*order.Order, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		http.NotFound(w, r)
		return nil, false
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		h.serverError(w, r, err)
		return nil, false
	}
	return o, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
