package model

import (
	"time"

	"github.com/emmaeryne/amjednamoussa/constant"
)

// PromoCode represents the promo_code table entity. Codes are stored upper-cased
// so lookups stay case-insensitive by construction.
type PromoCode struct {
	ID             uint64                `db:"id" json:"id"`
	Code           string                `db:"code" json:"code"`
	DiscountType   constant.DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue  float64               `db:"discount_value" json:"discount_value"`
	MinOrderAmount float64               `db:"min_order_amount" json:"min_order_amount"`
	MaxUses        *int64                `db:"max_uses" json:"max_uses"` // nil = unlimited
	CurrentUses    int64                 `db:"current_uses" json:"current_uses"`
	IsActive       bool                  `db:"is_active" json:"is_active"`
	ExpiresAt      *time.Time            `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time            `db:"updated_at" json:"updated_at,omitempty"`
}

// CreatePromoCodeRequest for admin promo code creation
type CreatePromoCodeRequest struct {
	Code           string                `json:"code" validate:"required,max=50"`
	DiscountType   constant.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue  float64               `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount float64               `json:"min_order_amount" validate:"gte=0"`
	MaxUses        *int64                `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	ExpiresAt      *time.Time            `json:"expires_at,omitempty"`
}

// UpdatePromoCodeRequest toggles activation of an existing code
type UpdatePromoCodeRequest struct {
	IsActive bool `json:"is_active"`
}

// ValidatePromoCodeRequest for storefront promo validation
type ValidatePromoCodeRequest struct {
	Code        string  `json:"code" validate:"required,max=50"`
	OrderAmount float64 `json:"order_amount" validate:"required,gt=0"`
}

// PromoValidation is the result of a successful promo code validation.
// Validation alone never mutates usage counters.
type PromoValidation struct {
	Promo          *PromoCode `json:"promo"`
	DiscountAmount float64    `json:"discount_amount"`
}
