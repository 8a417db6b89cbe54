package constant

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValidDiscountType reports whether t is a known discount type.
func IsValidDiscountType(t DiscountType) bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}
