// Command seed-db loads demo orders from a JSON file into the database.
// Intended for local development and demos.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
	"github.com/Pascal-138/ChiefOrders/internal/storage/postgres"
)

type itemJSON struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type orderJSON struct {
	TableNumber int        `json:"table_number"`
	Items       []itemJSON `json:"items"`
	Status      string     `json:"status"`
}

func main() {
	var (
		databaseURL string
		ordersFile  string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&ordersFile, "orders-file", "db/seed/orders.json", "path to demo orders JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, ordersFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, ordersFile string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	data, err := os.ReadFile(ordersFile)
	if err != nil {
		return errors.Wrap(err, "read orders file")
	}

	var seeds []orderJSON
	if err := json.Unmarshal(data, &seeds); err != nil {
		return errors.Wrap(err, "parse orders file")
	}

	repo := postgres.NewOrderRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, seed := range seeds {
		g.Go(func() error {
			status, err := order.ParseStatus(seed.Status)
			if err != nil {
				return errors.Wrapf(err, "order for table %d", seed.TableNumber)
			}

			items := make([]order.LineItem, len(seed.Items))
			for i, item := range seed.Items {
				items[i] = order.LineItem{Name: item.Name, Price: item.Price}
			}

			o := &order.Order{
				TableNumber: seed.TableNumber,
				Items:       items,
				TotalPrice:  order.TotalOf(items),
				Status:      status,
			}
			if err := repo.Create(gctx, o); err != nil {
				return errors.Wrapf(err, "insert order for table %d", seed.TableNumber)
			}

			slog.Info("seeded order",
				slog.Int64("id", o.ID),
				slog.Int("table_number", o.TableNumber),
				slog.String("status", string(o.Status)),
			)
			return nil
		})
	}

	return g.Wait()
}
