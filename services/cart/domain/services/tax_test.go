package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ghuser/cartengine/services/cart/domain"
)

func TestNewTaxCalculator(t *testing.T) {
	t.Run("accepts zero rate", func(t *testing.T) {
		if _, err := NewTaxCalculator(decimal.Zero); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewTaxCalculator(decimal.RequireFromString("-1"))
		if !errors.Is(err, domain.ErrNegativeAmount) {
			t.Fatalf("expected ErrNegativeAmount, got %v", err)
		}
	})
}

func TestTaxCalculatorAmount(t *testing.T) {
	calc, err := NewTaxCalculator(decimal.RequireFromString("12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name     string
		subTotal string
		want     string
	}{
		{"whole subtotal", "100", "12.5"},
		{"fractional subtotal", "7.56", "0.945"},
		{"zero subtotal", "0", "0"},
		{"sub-cent precision is preserved", "0.01", "0.00125"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.Amount(decimal.RequireFromString(tc.subTotal))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected tax %s, got %s", tc.want, got)
			}
		})
	}

	t.Run("rejects negative subtotal", func(t *testing.T) {
		_, err := calc.Amount(decimal.RequireFromString("-1"))
		if !errors.Is(err, domain.ErrNegativeAmount) {
			t.Fatalf("expected ErrNegativeAmount, got %v", err)
		}
	})

	t.Run("zero rate yields zero tax", func(t *testing.T) {
		zeroRate, err := NewTaxCalculator(decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := zeroRate.Amount(decimal.RequireFromString("123.45"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Fatalf("expected zero tax, got %s", got)
		}
	})
}
