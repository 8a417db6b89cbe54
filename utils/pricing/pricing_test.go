package pricing_test

import (
	"math"
	"testing"

	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/utils/pricing"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name        string
		subtotal    float64
		deliveryFee float64
		discount    float64
		want        float64
	}{
		{
			name:        "no discount",
			subtotal:    100,
			deliveryFee: 7,
			discount:    0,
			want:        107,
		},
		{
			name:        "with discount",
			subtotal:    100,
			deliveryFee: 7,
			discount:    20,
			want:        87,
		},
		{
			name:        "discount exceeds subtotal plus fee, clamped to zero",
			subtotal:    10,
			deliveryFee: 7,
			discount:    50,
			want:        0,
		},
		{
			name:        "rounded to two decimals",
			subtotal:    10.556,
			deliveryFee: 7,
			discount:    0,
			want:        17.56,
		},
		{
			name:        "zero everything",
			subtotal:    0,
			deliveryFee: 0,
			discount:    0,
			want:        0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Total(tt.subtotal, tt.deliveryFee, tt.discount)
			if got != tt.want {
				t.Fatalf("Total() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name          string
		discountType  constant.DiscountType
		discountValue float64
		orderAmount   float64
		want          float64
	}{
		{
			name:          "percentage discount",
			discountType:  constant.DiscountTypePercentage,
			discountValue: 10,
			orderAmount:   200,
			want:          20,
		},
		{
			name:          "percentage discount rounds to two decimals",
			discountType:  constant.DiscountTypePercentage,
			discountValue: 15,
			orderAmount:   99.99,
			want:          15,
		},
		{
			name:          "fixed discount below order amount",
			discountType:  constant.DiscountTypeFixed,
			discountValue: 20,
			orderAmount:   100,
			want:          20,
		},
		{
			name:          "fixed discount capped at order amount",
			discountType:  constant.DiscountTypeFixed,
			discountValue: 50,
			orderAmount:   30,
			want:          30,
		},
		{
			name:          "unknown discount type yields zero",
			discountType:  constant.DiscountType("bogus"),
			discountValue: 50,
			orderAmount:   100,
			want:          0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Discount(tt.discountType, tt.discountValue, tt.orderAmount)
			if got != tt.want {
				t.Fatalf("Discount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubtotal(t *testing.T) {
	got := pricing.Subtotal([]float64{19.99, 5.5}, []int{2, 3})
	want := 19.99*2 + 5.5*3
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Subtotal() = %v, want %v", got, want)
	}
}

// The submission path and the notifier verification path must agree on the
// total for the same raw inputs.
func TestTotalDeterministic(t *testing.T) {
	prices := []float64{19.99, 34.5, 7.25}
	quantities := []int{2, 1, 4}

	subtotal := pricing.Subtotal(prices, quantities)
	first := pricing.Total(subtotal, 7, 10.5)
	second := pricing.Total(pricing.Subtotal(prices, quantities), 7, 10.5)
	if first != second {
		t.Fatalf("Total() not deterministic: %v != %v", first, second)
	}
}
