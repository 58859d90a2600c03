package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (table_number, items, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	getOrderSQL = `SELECT id, table_number, items, total_price, status, created_at
		FROM orders WHERE id = $1`

	listOrdersSQL = `SELECT id, table_number, items, total_price, status, created_at
		FROM orders`

	updateOrderSQL = `UPDATE orders SET status = $2, total_price = $3 WHERE id = $1`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`

	sumTotalSQL = `SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order and fills in its generated ID and creation
// time. Line items are serialized to JSON for the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	err = r.pool.QueryRow(ctx, createOrderSQL,
		o.TableNumber, itemsJSON, o.TotalPrice, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	return nil
}

// GetByID returns a single order or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return &o, nil
}

// List returns orders matching the filter, ordered by ID so listings are
// deterministic.
func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	query := listOrdersSQL
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		query += " WHERE status = $" + strconv.Itoa(len(args))
	}
	if f.TableNumber > 0 {
		args = append(args, f.TableNumber)
		if len(args) == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}
		query += " table_number = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// Update writes the mutable fields (status, total) of an existing order.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, updateOrderSQL, o.ID, o.Status, o.TotalPrice)
	if err != nil {
		return fmt.Errorf("updating order %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes an order permanently.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// SumTotalByStatus aggregates total_price over orders in the given status.
func (r *OrderRepository) SumTotalByStatus(ctx context.Context, status order.Status) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, sumTotalSQL, status).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing orders: %w", err)
	}
	return sum, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		itemsJSON []byte
		status    string
	)
	err := row.Scan(&o.ID, &o.TableNumber, &itemsJSON, &o.TotalPrice, &status, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	o.Status = order.Status(status)

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return o, fmt.Errorf("unmarshaling items for order %d: %w", o.ID, err)
	}
	return o, nil
}
