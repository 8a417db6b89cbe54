package model

// NotificationItem is one order line as carried in a notification request.
type NotificationItem struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Price    float64 `json:"price" validate:"required,gt=0,lte=100000"`
	Quantity int     `json:"quantity" validate:"required,gt=0,lte=100"`
	Size     string  `json:"size,omitempty" validate:"max=50"`
	Color    string  `json:"color,omitempty" validate:"max=50"`
}

// OrderNotificationRequest is the payload the notifier accepts, over HTTP or
// from the order-created queue. The notifier does not trust the claimed total:
// it recomputes it from the raw items before sending anything.
type OrderNotificationRequest struct {
	OrderID         string             `json:"orderId" validate:"required,min=1,max=100"`
	CustomerEmail   string             `json:"customerEmail" validate:"required,email,max=200"`
	CustomerName    string             `json:"customerName" validate:"required,min=1,max=100"`
	CustomerPhone   string             `json:"customerPhone" validate:"required,min=8,max=20"`
	CustomerAddress string             `json:"customerAddress" validate:"required,min=1,max=500"`
	CustomerCity    string             `json:"customerCity" validate:"required,min=1,max=100"`
	Items           []NotificationItem `json:"items" validate:"required,min=1,max=50,dive"`
	Subtotal        float64            `json:"subtotal" validate:"gte=0,lte=1000000"`
	DeliveryFee     float64            `json:"deliveryFee" validate:"gte=0,lte=1000"`
	DiscountAmount  float64            `json:"discountAmount" validate:"gte=0,lte=1000000"`
	PromoCode       *string            `json:"promoCode,omitempty" validate:"omitempty,max=50"`
	TotalAmount     float64            `json:"totalAmount" validate:"required,gt=0,lte=1000000"`
}

// OrderNotificationResponse reports the generated message identifiers.
type OrderNotificationResponse struct {
	CustomerEmailID string `json:"customer_email_id,omitempty"`
	AdminEmailID    string `json:"admin_email_id,omitempty"`
}
