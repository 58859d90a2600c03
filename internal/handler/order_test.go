package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pascal-138/ChiefOrders/internal/domain/order"
)

// memRepo is an in-memory order.Repository for handler tests.
type memRepo struct {
	orders map[int64]*order.Order
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[int64]*order.Order), nextID: 1}
}

func (m *memRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = m.nextID
	m.nextID++
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, f order.Filter) ([]order.Order, error) {
	out := []order.Order{}
	for id := int64(1); id < m.nextID; id++ {
		o, ok := m.orders[id]
		if !ok {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.TableNumber > 0 && o.TableNumber != f.TableNumber {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return order.ErrNotFound
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memRepo) SumTotalByStatus(_ context.Context, status order.Status) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range m.orders {
		if o.Status == status {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

func newTestServer(repo *memRepo) *httptest.Server {
	h := NewHandler(order.NewService(repo))
	return httptest.NewServer(h.Routes())
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, url string) (*http.Response, []map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestCreateOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		repo := newMemRepo()
		srv := newTestServer(repo)
		defer srv.Close()

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/orders",
			`{"table_number": 5, "items": "[{\"name\":\"Pizza\",\"price\":200},{\"name\":\"Soda\",\"price\":30}]"}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, float64(1), body["id"])
		assert.Equal(t, float64(5), body["table_number"])
		assert.Equal(t, float64(230), body["total_price"])
		assert.Equal(t, "pending", body["status"])
	})

	t.Run("table number as text", func(t *testing.T) {
		repo := newMemRepo()
		srv := newTestServer(repo)
		defer srv.Close()

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/orders",
			`{"table_number": "7", "items": "[]"}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, float64(7), body["table_number"])
		assert.Equal(t, float64(0), body["total_price"])
	})

	t.Run("invalid table number persists nothing", func(t *testing.T) {
		repo := newMemRepo()
		srv := newTestServer(repo)
		defer srv.Close()

		for _, raw := range []string{`0`, `-2`, `"abc"`, `null`} {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/orders",
				`{"table_number": `+raw+`, "items": "[]"}`)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode, "table_number %s", raw)
			assert.Contains(t, body["message"], "table number")
		}
		assert.Empty(t, repo.orders)
	})

	t.Run("malformed items persists nothing", func(t *testing.T) {
		repo := newMemRepo()
		srv := newTestServer(repo)
		defer srv.Close()

		resp, body := doJSON(t, http.MethodPost, srv.URL+"/orders",
			`{"table_number": 5, "items": "{\"name\":\"Pizza\"}"}`)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid dish format, check encoding", body["message"])
		assert.Empty(t, repo.orders)
	})
}

func TestGetOrder(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	_, created := doJSON(t, http.MethodPost, srv.URL+"/orders",
		`{"table_number": 5, "items": "[{\"name\":\"Pizza\",\"price\":200}]"}`)

	t.Run("found", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/orders/1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created["id"], body["id"])
		assert.Equal(t, float64(200), body["total_price"])
	})

	t.Run("missing is 404", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/orders/99", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "order not found", body["message"])
	})

	t.Run("garbage id is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/orders/abc", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateOrder(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	doJSON(t, http.MethodPost, srv.URL+"/orders",
		`{"table_number": 5, "items": "[{\"name\":\"Pizza\",\"price\":200}]"}`)

	t.Run("patch to paid keeps total", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPatch, srv.URL+"/orders/1", `{"status":"paid"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "paid", body["status"])
		assert.Equal(t, float64(200), body["total_price"])
	})

	t.Run("put is an alias", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/orders/1", `{"status":"ready"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPatch, srv.URL+"/orders/1", `{"status":"shipped"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["message"], "status must be one of")
	})

	t.Run("missing order is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/orders/42", `{"status":"paid"}`)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteOrder(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	doJSON(t, http.MethodPost, srv.URL+"/orders", `{"table_number": 1, "items": "[]"}`)
	doJSON(t, http.MethodPost, srv.URL+"/orders", `{"table_number": 2, "items": "[]"}`)
	doJSON(t, http.MethodPatch, srv.URL+"/orders/2", `{"status":"paid"}`)

	t.Run("pending order is deleted", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/orders/1", "")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.NotContains(t, repo.orders, int64(1))
	})

	t.Run("paid order is refused", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodDelete, srv.URL+"/orders/2", "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "cannot delete a paid order", body["message"])
		assert.Contains(t, repo.orders, int64(2))
	})
}

func TestListAndSearchOrders(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	doJSON(t, http.MethodPost, srv.URL+"/orders", `{"table_number": 1, "items": "[]"}`)
	doJSON(t, http.MethodPost, srv.URL+"/orders", `{"table_number": 2, "items": "[]"}`)
	doJSON(t, http.MethodPost, srv.URL+"/orders", `{"table_number": 2, "items": "[]"}`)
	doJSON(t, http.MethodPatch, srv.URL+"/orders/2", `{"status":"ready"}`)

	t.Run("list all", func(t *testing.T) {
		resp, orders := doJSONList(t, srv.URL+"/orders")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, orders, 3)
	})

	t.Run("list filtered by status", func(t *testing.T) {
		resp, orders := doJSONList(t, srv.URL+"/orders?status=ready")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, orders, 1)
		assert.Equal(t, "ready", orders[0]["status"])
	})

	t.Run("list with unknown status is empty", func(t *testing.T) {
		resp, orders := doJSONList(t, srv.URL+"/orders?status=bogus")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, orders)
	})

	t.Run("search by table number", func(t *testing.T) {
		resp, orders := doJSONList(t, srv.URL+"/orders/search?table_number=2")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, orders, 2)
	})

	t.Run("search combines filters", func(t *testing.T) {
		resp, orders := doJSONList(t, srv.URL+"/orders/search?table_number=2&status=ready")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, orders, 1)
		assert.Equal(t, "ready", orders[0]["status"])
	})

	t.Run("non-numeric table number is a validation message", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/orders/search?table_number=abc", "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["message"], "table number")
	})

	t.Run("repeated identical reads agree", func(t *testing.T) {
		_, first := doJSONList(t, srv.URL+"/orders?status=ready")
		_, second := doJSONList(t, srv.URL+"/orders?status=ready")
		assert.Equal(t, first, second)
	})
}

func TestRevenue(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	t.Run("zero without paid orders", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/revenue", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(0), body["total_revenue"])
	})

	t.Run("sums paid orders", func(t *testing.T) {
		doJSON(t, http.MethodPost, srv.URL+"/orders",
			`{"table_number": 5, "items": "[{\"name\":\"Pizza\",\"price\":200}]"}`)
		doJSON(t, http.MethodPost, srv.URL+"/orders",
			`{"table_number": 6, "items": "[{\"name\":\"Soda\",\"price\":30}]"}`)
		doJSON(t, http.MethodPatch, srv.URL+"/orders/1", `{"status":"paid"}`)

		resp, body := doJSON(t, http.MethodGet, srv.URL+"/revenue", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(200), body["total_revenue"])
	})
}
