package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChargeForQuantity(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		price    string
		want     string
	}{
		{"exact thousand", 1000, "10.00", "10.00"},
		{"fractional rounds to even", 333, "3.00", "1.00"},
		{"exact two-place result is unchanged", 2500, "1.00", "2.50"},
		{"zero quantity", 0, "5.00", "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price := decimal.RequireFromString(tc.price)
			got := ChargeForQuantity(tc.quantity, price)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestViewsFromClicks(t *testing.T) {
	cases := []struct {
		name        string
		clicks      int64
		coefficient string
		want        int64
	}{
		{"whole division", 100, "2", 50},
		{"floors fractional result", 101, "2", 50},
		{"zero coefficient is safe", 100, "0", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coeff := decimal.RequireFromString(tc.coefficient)
			assert.Equal(t, tc.want, ViewsFromClicks(tc.clicks, coeff))
		})
	}
}

func TestClicksRequired(t *testing.T) {
	cases := []struct {
		name        string
		quantity    int64
		coefficient string
		want        int64
	}{
		{"whole multiple", 100, "2", 200},
		{"fractional coefficient with whole product", 100, "1.5", 150},
		{"ceils a remainder up", 101, "1.5", 152},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coeff := decimal.RequireFromString(tc.coefficient)
			assert.Equal(t, tc.want, ClicksRequired(tc.quantity, coeff))
		})
	}
}
