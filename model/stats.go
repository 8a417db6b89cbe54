package model

// SalesStats aggregates order revenue for the admin dashboard. NetRevenue
// subtracts total discounts from total revenue.
type SalesStats struct {
	TotalRevenue      float64 `db:"total_revenue" json:"total_revenue"`
	TotalOrders       int64   `db:"total_orders" json:"total_orders"`
	DeliveredOrders   int64   `db:"delivered_orders" json:"delivered_orders"`
	PendingOrders     int64   `db:"pending_orders" json:"pending_orders"`
	AverageOrderValue float64 `db:"-" json:"average_order_value"`
	MonthlyRevenue    float64 `db:"monthly_revenue" json:"monthly_revenue"`
	MonthlyOrders     int64   `db:"monthly_orders" json:"monthly_orders"`
	TodayRevenue      float64 `db:"today_revenue" json:"today_revenue"`
	TodayOrders       int64   `db:"today_orders" json:"today_orders"`
	TotalDeliveryFees float64 `db:"total_delivery_fees" json:"total_delivery_fees"`
	TotalDiscounts    float64 `db:"total_discounts" json:"total_discounts"`
	NetRevenue        float64 `db:"-" json:"net_revenue"`
}
