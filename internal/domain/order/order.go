package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusPaid    Status = "paid"
)

// Statuses lists every valid status, in lifecycle order.
var Statuses = []Status{StatusPending, StatusReady, StatusPaid}

// ParseStatus validates a raw status value against the closed enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusReady, StatusPaid:
		return Status(s), nil
	}
	return "", &ValidationError{
		Field:   "status",
		Message: "status must be one of: pending, ready, paid",
	}
}

// LineItem is a single dish on an order.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Order represents a table's order with its computed total.
type Order struct {
	ID          int64
	TableNumber int
	Items       []LineItem
	TotalPrice  decimal.Decimal
	Status      Status
	CreatedAt   time.Time
}

// TotalOf returns the exact sum of item prices. An empty list totals to
// decimal zero, never a float default.
func TotalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// Filter narrows list and search queries. Zero values mean "no filter".
type Filter struct {
	Status      Status
	TableNumber int
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id int64) error
	SumTotalByStatus(ctx context.Context, status Status) (decimal.Decimal, error)
}

// ErrNotFound is returned when a referenced order does not exist.
var ErrNotFound = errors.New("order not found")

// ValidationError reports invalid caller input on a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Sentinel validation errors shared by both the REST and HTML paths.
var (
	ErrItemsFormat = &ValidationError{
		Field:   "items",
		Message: "invalid dish format, check encoding",
	}
	ErrTableNumber = &ValidationError{
		Field:   "table_number",
		Message: "table number must be an integer greater than or equal to 1",
	}
	ErrDeletePaid = &ValidationError{
		Field:   "status",
		Message: "cannot delete a paid order",
	}
)
