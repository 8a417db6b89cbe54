package pricing

import (
	"math"

	"github.com/emmaeryne/amjednamoussa/constant"
)

// Round2 rounds to 2 decimal places, half away from zero on the cent.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal sums price * quantity over the cart lines.
func Subtotal(prices []float64, quantities []int) float64 {
	var sum float64
	for i := range prices {
		sum += prices[i] * float64(quantities[i])
	}
	return sum
}

// Total combines subtotal, delivery fee and discount into the final charged
// amount. The result is clamped at zero and rounded to 2 decimals. Both the
// order submission path and the notifier verification path must go through
// this function so the two computations compare equal.
func Total(subtotal, deliveryFee, discount float64) float64 {
	total := subtotal + deliveryFee - discount
	if total < 0 {
		total = 0
	}
	return Round2(total)
}

// Discount computes the discount amount for a promo code against an order
// amount. Percentage discounts scale with the amount; fixed discounts are
// capped at the order amount so the net never goes below zero.
func Discount(discountType constant.DiscountType, discountValue, orderAmount float64) float64 {
	switch discountType {
	case constant.DiscountTypePercentage:
		return Round2(orderAmount * discountValue / 100)
	case constant.DiscountTypeFixed:
		return Round2(math.Min(discountValue, orderAmount))
	}
	return 0
}
