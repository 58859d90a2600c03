package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// CreateRequest holds validated input for creating an order.
type CreateRequest struct {
	TableNumber int
	Items       []LineItem
}

// Service encapsulates the order business rules on top of a Repository.
// Every persist path recomputes the total from line items; callers can never
// supply their own total.
type Service struct {
	orders Repository
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	return &Service{orders: orders}
}

// Create validates the request, computes the total, and persists a new order
// in pending status. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if req.TableNumber < 1 {
		return nil, ErrTableNumber
	}

	o := &Order{
		TableNumber: req.TableNumber,
		Items:       req.Items,
		TotalPrice:  TotalOf(req.Items),
		Status:      StatusPending,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// Get returns a single order by ID, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns orders matching the optional status filter, in insertion order.
func (s *Service) List(ctx context.Context, status Status) ([]Order, error) {
	if status != "" {
		if _, err := ParseStatus(string(status)); err != nil {
			// An unknown status matches nothing rather than erroring,
			// mirroring exact-match filter semantics.
			return []Order{}, nil
		}
	}
	return s.orders.List(ctx, Filter{Status: status})
}

// Search filters orders by table number and/or status, combined with AND.
func (s *Service) Search(ctx context.Context, f Filter) ([]Order, error) {
	if f.TableNumber < 0 {
		return nil, ErrTableNumber
	}
	return s.orders.List(ctx, f)
}

// UpdateStatus changes only the status of an existing order. The enumeration
// is enforced here so every entry path gets the same check. The total is
// recomputed from the stored items on save, which leaves it unchanged since
// items are immutable after creation.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Status = status
	o.TotalPrice = TotalOf(o.Items)
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrapf(err, "update order %d", id)
	}
	return o, nil
}

// Delete removes an order permanently. Paid orders cannot be deleted: they
// are revenue history for the shift report.
func (s *Service) Delete(ctx context.Context, id int64) error {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status == StatusPaid {
		return ErrDeletePaid
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete order %d", id)
	}
	return nil
}

// RevenueForShift sums the totals of all paid orders. It returns exactly
// zero when no paid orders exist.
func (s *Service) RevenueForShift(ctx context.Context) (decimal.Decimal, error) {
	revenue, err := s.orders.SumTotalByStatus(ctx, StatusPaid)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sum paid orders")
	}
	return revenue, nil
}
