package order

import (
	"context"
	"database/sql"

	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) error
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID string, items []model.CartItemRequest) error
	List(ctx context.Context) ([]model.OrderWithItems, error)
	GetByID(ctx context.Context, orderID string) (*model.OrderWithItems, error)
	UpdateStatus(ctx context.Context, orderID string, status string) error
	GetSalesStats(ctx context.Context) (*model.SalesStats, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrderQuery = "INSERT INTO `order` (id, customer_name, customer_email, customer_phone, customer_address, customer_city, notes, total_amount, delivery_fee, discount_amount, promo_code, status, payment_method, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())"

	insertOrderItemQuery = "INSERT INTO order_item (order_id, product_id, product_name, product_price, quantity, size, color, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())"

	// Pending orders first, then newest first within the same status.
	listOrdersQuery = "SELECT id, customer_name, customer_email, customer_phone, customer_address, customer_city, notes, total_amount, delivery_fee, discount_amount, promo_code, status, payment_method, created_at, updated_at FROM `order` ORDER BY FIELD(status, 'pending', 'confirmed', 'shipped', 'delivered', 'cancelled'), created_at DESC"

	getOrderQuery = "SELECT id, customer_name, customer_email, customer_phone, customer_address, customer_city, notes, total_amount, delivery_fee, discount_amount, promo_code, status, payment_method, created_at, updated_at FROM `order` WHERE id = ?"

	listOrderItemsQuery = "SELECT id, order_id, product_id, product_name, product_price, quantity, size, color, created_at FROM order_item WHERE order_id IN (?) ORDER BY id"

	salesStatsQuery = "SELECT COALESCE(SUM(total_amount), 0) AS total_revenue, COUNT(*) AS total_orders, COALESCE(SUM(status = 'delivered'), 0) AS delivered_orders, COALESCE(SUM(status = 'pending'), 0) AS pending_orders, COALESCE(SUM(IF(created_at >= DATE_FORMAT(NOW(), '%Y-%m-01'), total_amount, 0)), 0) AS monthly_revenue, COALESCE(SUM(created_at >= DATE_FORMAT(NOW(), '%Y-%m-01')), 0) AS monthly_orders, COALESCE(SUM(IF(created_at >= CURDATE(), total_amount, 0)), 0) AS today_revenue, COALESCE(SUM(created_at >= CURDATE()), 0) AS today_orders, COALESCE(SUM(delivery_fee), 0) AS total_delivery_fees, COALESCE(SUM(discount_amount), 0) AS total_discounts FROM `order`"
)

func (s *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) error {
	_, err := tx.ExecContext(ctx, insertOrderQuery,
		req.ID, req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.CustomerAddress, req.CustomerCity,
		req.Notes, req.TotalAmount, req.DeliveryFee, req.DiscountAmount, req.PromoCode, req.Status, req.PaymentMethod)
	return err
}

func (s *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID string, items []model.CartItemRequest) error {
	for _, it := range items {
		size := nullableString(it.Size)
		color := nullableString(it.Color)
		if _, err := tx.ExecContext(ctx, insertOrderItemQuery, orderID, it.ProductID, it.ProductName, it.Price, it.Quantity, size, color); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQL) List(ctx context.Context) ([]model.OrderWithItems, error) {
	rows, err := s.conn.QueryxContext(ctx, listOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.OrderWithItems, 0)
	ids := make([]interface{}, 0)
	index := make(map[string]int)
	for rows.Next() {
		var o model.Order
		if err := rows.StructScan(&o); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, model.OrderWithItems{Order: o, Items: make([]model.OrderItem, 0)})
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	query, args, err := sqlx.In(listOrderItemsQuery, ids)
	if err != nil {
		return nil, err
	}
	itemRows, err := s.conn.QueryxContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it model.OrderItem
		if err := itemRows.StructScan(&it); err != nil {
			return nil, err
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, itemRows.Err()
}

func (s *SQL) GetByID(ctx context.Context, orderID string) (*model.OrderWithItems, error) {
	var o model.Order
	if err := s.conn.QueryRowxContext(ctx, getOrderQuery, orderID).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	query, args, err := sqlx.In(listOrderItemsQuery, []interface{}{orderID})
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryxContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &model.OrderWithItems{Order: o, Items: make([]model.OrderItem, 0)}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, it)
	}
	return result, rows.Err()
}

func (s *SQL) UpdateStatus(ctx context.Context, orderID string, status string) error {
	res, err := s.conn.ExecContext(ctx, "UPDATE `order` SET status = ?, updated_at = NOW() WHERE id = ?", status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) GetSalesStats(ctx context.Context) (*model.SalesStats, error) {
	var stats model.SalesStats
	if err := s.conn.QueryRowxContext(ctx, salesStatsQuery).StructScan(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
