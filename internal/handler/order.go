package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
)

// createOrderRequest carries the raw create payload. table_number is kept
// raw because clients send it either as a JSON number or as text; items is a
// JSON-encoded string, not a nested array.
type createOrderRequest struct {
	TableNumber json.RawMessage `json:"table_number"`
	Items       string          `json:"items"`
}

// updateOrderRequest carries a status transition.
type updateOrderRequest struct {
	Status string `json:"status"`
}

// CreateOrder handles POST /api/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tableNumber, err := order.ParseTableNumber(rawText(req.TableNumber))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	items, err := order.ParseItems(req.Items)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	o, err := h.orders.Create(r.Context(), order.CreateRequest{
		TableNumber: tableNumber,
		Items:       items,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// ListOrders handles GET /api/orders with an optional ?status= filter.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), order.Status(r.URL.Query().Get("status")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderListResponse(orders))
}

// SearchOrders handles GET /api/orders/search with optional ?table_number=
// and ?status= filters, combined with AND.
func (h *Handler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	var f order.Filter

	if raw := strings.TrimSpace(r.URL.Query().Get("table_number")); raw != "" {
		tableNumber, err := order.ParseTableNumber(raw)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		f.TableNumber = tableNumber
	}
	f.Status = order.Status(strings.TrimSpace(r.URL.Query().Get("status")))

	orders, err := h.orders.Search(r.Context(), f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderListResponse(orders))
}

// GetOrder handles GET /api/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// UpdateOrder handles PATCH and PUT /api/orders/{id}. Only the status field
// is mutable after creation.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, order.Status(req.Status))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// DeleteOrder handles DELETE /api/orders/{id}. Paid orders are refused.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Revenue handles GET /api/revenue: the sum of totals over paid orders.
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.orders.RevenueForShift(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"total_revenue": revenue.InexactFloat64(),
	})
}

func toOrderListResponse(orders []order.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out
}

// orderID parses the {id} path parameter, responding with 404 when it is not
// a valid identifier (an impossible ID can never name an existing order).
func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, order.ErrNotFound.Error())
		return 0, false
	}
	return id, true
}

// rawText unquotes a raw JSON scalar so "5" and 5 both become the text 5.
func rawText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}
