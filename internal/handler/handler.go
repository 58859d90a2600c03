// Package handler implements the JSON REST surface under /api.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
)

// Handler serves the REST API, delegating business logic to the order
// service.
type Handler struct {
	orders *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(orders *order.Service) *Handler {
	return &Handler{orders: orders}
}

// errorResponse is the uniform JSON error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// orderItemResponse mirrors a line item in API responses.
type orderItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// orderResponse is the JSON representation of an order.
type orderResponse struct {
	ID          int64               `json:"id"`
	TableNumber int                 `json:"table_number"`
	Items       []orderItemResponse `json:"items"`
	TotalPrice  float64             `json:"total_price"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemResponse{
			Name:  item.Name,
			Price: item.Price.InexactFloat64(),
		}
	}
	return orderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Items:       items,
		TotalPrice:  o.TotalPrice.InexactFloat64(),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

// writeDomainError maps domain errors to HTTP responses: validation failures
// become 400, missing orders 404, anything else a generic 500 that never
// leaks storage detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, order.ErrNotFound.Error())
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
