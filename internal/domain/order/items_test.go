package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItems(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		items, err := ParseItems(`[{"name":"Pizza","price":200},{"name":"Soda","price":30}]`)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "Pizza", items[0].Name)
		assert.True(t, items[0].Price.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "Soda", items[1].Name)
		assert.True(t, items[1].Price.Equal(decimal.NewFromInt(30)))
	})

	t.Run("fractional prices keep exact precision", func(t *testing.T) {
		items, err := ParseItems(`[{"name":"Soup","price":120.55}]`)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "120.55", items[0].Price.String())
	})

	t.Run("empty list is allowed", func(t *testing.T) {
		items, err := ParseItems(`[]`)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("extra fields are ignored", func(t *testing.T) {
		items, err := ParseItems(`[{"name":"Pizza","price":200,"note":"extra cheese"}]`)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"not json", "not json at all"},
		{"not a list", `{"name":"Pizza","price":200}`},
		{"scalar", `42`},
		{"element not an object", `["Pizza"]`},
		{"element missing name", `[{"price":200}]`},
		{"element missing price", `[{"name":"Pizza"}]`},
		{"price as string", `[{"name":"Pizza","price":"200"}]`},
		{"name not a string", `[{"name":5,"price":200}]`},
		{"empty name", `[{"name":"","price":200}]`},
		{"negative price", `[{"name":"Pizza","price":-1}]`},
		{"truncated json", `[{"name":"Pizza","price":200}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseItems(tt.raw)
			require.ErrorIs(t, err, ErrItemsFormat)
			assert.Nil(t, items)
		})
	}
}

func TestParseTableNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, err := ParseTableNumber(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrTableNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestTotalOf(t *testing.T) {
	assert.True(t, TotalOf(nil).IsZero())

	items := []LineItem{
		{Name: "Pizza", Price: decimal.RequireFromString("200")},
		{Name: "Soda", Price: decimal.RequireFromString("30")},
		{Name: "Soup", Price: decimal.RequireFromString("0.10")},
	}
	assert.Equal(t, "230.1", TotalOf(items).String())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "ready", "paid"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	for _, s := range []string{"", "PAID", "cancelled", "done"} {
		_, err := ParseStatus(s)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Field)
	}
}
