package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidPassword
	ErrEmptyCart
	ErrMissingField
	ErrInvalidAmount
	ErrPromoNotFound
	ErrPromoExpired
	ErrPromoUsageLimit
	ErrPromoBelowMinimum
	ErrPromoCodeExists
	ErrInvalidOrderStatus
	ErrTotalMismatch
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrInvalidPassword:    "password invalid",
	ErrEmptyCart:          "cart is empty",
	ErrMissingField:       "all required fields must be filled",
	ErrInvalidAmount:      "order amount must be greater than 0",
	ErrPromoNotFound:      "promo code invalid",
	ErrPromoExpired:       "promo code has expired",
	ErrPromoUsageLimit:    "promo code usage limit reached",
	ErrPromoBelowMinimum:  "order amount below promo code minimum",
	ErrPromoCodeExists:    "promo code already exists",
	ErrInvalidOrderStatus: "invalid order status",
	ErrTotalMismatch:      "total amount mismatch",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusBadRequest,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrInvalidPassword:    http.StatusBadRequest,
	ErrEmptyCart:          http.StatusBadRequest,
	ErrMissingField:       http.StatusBadRequest,
	ErrInvalidAmount:      http.StatusBadRequest,
	ErrPromoNotFound:      http.StatusBadRequest,
	ErrPromoExpired:       http.StatusBadRequest,
	ErrPromoUsageLimit:    http.StatusBadRequest,
	ErrPromoBelowMinimum:  http.StatusBadRequest,
	ErrPromoCodeExists:    http.StatusBadRequest,
	ErrInvalidOrderStatus: http.StatusBadRequest,
	ErrTotalMismatch:      http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrInvalidPassword:    "0005",
	ErrEmptyCart:          "0006",
	ErrMissingField:       "0007",
	ErrInvalidAmount:      "0008",
	ErrPromoNotFound:      "0009",
	ErrPromoExpired:       "0010",
	ErrPromoUsageLimit:    "0011",
	ErrPromoBelowMinimum:  "0012",
	ErrPromoCodeExists:    "0013",
	ErrInvalidOrderStatus: "0014",
	ErrTotalMismatch:      "0015",
}
