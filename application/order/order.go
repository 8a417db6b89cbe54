package order

import (
	"context"
	"database/sql"
	"strings"

	"github.com/emmaeryne/amjednamoussa/cmd/config"
	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/model"
	orderrepo "github.com/emmaeryne/amjednamoussa/repository/order"
	promorepo "github.com/emmaeryne/amjednamoussa/repository/promo"
	redisrepo "github.com/emmaeryne/amjednamoussa/repository/redis"
	txrepo "github.com/emmaeryne/amjednamoussa/repository/tx"
	"github.com/emmaeryne/amjednamoussa/thirdparty/rabbitmq"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	"github.com/emmaeryne/amjednamoussa/utils/pricing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.OrderWithItems, error)
	GetOrder(ctx context.Context, orderID string) (*model.OrderWithItems, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status constant.OrderStatus) error
	SalesStats(ctx context.Context) (*model.SalesStats, error)
}

type orderAppImpl struct {
	config    *config.Config
	txRepo    txrepo.TxRepository
	orderRepo orderrepo.OrderRepository
	promoRepo promorepo.PromoRepository
	redisRepo redisrepo.Repository
	publisher *rabbitmq.Publisher
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, promoRepo promorepo.PromoRepository, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{
		config:    config,
		txRepo:    txRepo,
		orderRepo: orderRepo,
		promoRepo: promoRepo,
		redisRepo: redisRepo,
		publisher: publisher,
	}
}

// CreateOrder validates the cart, persists the order and its line items in a
// single transaction, then runs the post-commit side effects: promo usage
// increment and the order-created notification. Side-effect failures are
// logged and swallowed, the committed order is never rolled back for them.
func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, cerr.SetCustomError(constant.ErrEmptyCart)
	}

	customerName := strings.TrimSpace(req.CustomerName)
	customerEmail := strings.TrimSpace(req.CustomerEmail)
	customerPhone := strings.TrimSpace(req.CustomerPhone)
	customerAddress := strings.TrimSpace(req.CustomerAddress)
	customerCity := strings.TrimSpace(req.CustomerCity)
	if customerName == "" || customerEmail == "" || customerPhone == "" || customerAddress == "" || customerCity == "" {
		return nil, cerr.SetCustomError(constant.ErrMissingField)
	}

	var subtotal float64
	for _, item := range req.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	if subtotal <= 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidAmount)
	}

	deliveryFee := pricing.Round2(s.config.Order.DeliveryFee)
	discount := pricing.Round2(req.DiscountAmount)
	totalAmount := pricing.Total(subtotal, deliveryFee, discount)

	var promoCode *string
	if trimmed := strings.ToUpper(strings.TrimSpace(req.PromoCode)); trimmed != "" {
		promoCode = &trimmed
	}
	var notes *string
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = &trimmed
	}

	orderEntity := &model.InsertOrderTxItem{
		ID:              uuid.NewString(),
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		CustomerPhone:   customerPhone,
		CustomerAddress: customerAddress,
		CustomerCity:    customerCity,
		Notes:           notes,
		TotalAmount:     totalAmount,
		DeliveryFee:     deliveryFee,
		DiscountAmount:  discount,
		PromoCode:       promoCode,
		Status:          constant.OrderStatusPending,
		PaymentMethod:   constant.PaymentMethodCashOnDelivery,
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateOrder] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.orderRepo.InsertOrderTx(ctx, tx, orderEntity); err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderEntity.ID, req.Items); err != nil {
		logger.Error("[CreateOrder] insert items", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateOrder] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if promoCode != nil {
		applied, err := s.promoRepo.IncrementUsage(ctx, *promoCode)
		if err != nil {
			logger.Error("[CreateOrder] increment promo usage", zap.String("promo_code", *promoCode), zap.String("error", err.Error()))
		} else if !applied {
			logger.Warn("[CreateOrder] promo usage not incremented", zap.String("promo_code", *promoCode), zap.String("order_id", orderEntity.ID))
		}
	}

	s.publishOrderCreated(orderEntity, req.Items, subtotal)

	if err := s.redisRepo.InvalidateTag(ctx, constant.CacheTagOrders); err != nil {
		logger.Warn("[CreateOrder] invalidate orders cache", zap.String("error", err.Error()))
	}

	return &model.Order{
		ID:              orderEntity.ID,
		CustomerName:    orderEntity.CustomerName,
		CustomerEmail:   orderEntity.CustomerEmail,
		CustomerPhone:   orderEntity.CustomerPhone,
		CustomerAddress: orderEntity.CustomerAddress,
		CustomerCity:    orderEntity.CustomerCity,
		Notes:           orderEntity.Notes,
		TotalAmount:     orderEntity.TotalAmount,
		DeliveryFee:     orderEntity.DeliveryFee,
		DiscountAmount:  orderEntity.DiscountAmount,
		PromoCode:       orderEntity.PromoCode,
		Status:          orderEntity.Status,
		PaymentMethod:   orderEntity.PaymentMethod,
	}, nil
}

// publishOrderCreated hands the full order payload to the notifier queue.
// Failure here must never surface as an order-creation failure.
func (s *orderAppImpl) publishOrderCreated(order *model.InsertOrderTxItem, items []model.CartItemRequest, subtotal float64) {
	if s.publisher == nil {
		return
	}

	notificationItems := make([]model.NotificationItem, 0, len(items))
	for _, item := range items {
		notificationItems = append(notificationItems, model.NotificationItem{
			Name:     item.ProductName,
			Price:    item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		})
	}

	msg := &model.OrderNotificationRequest{
		OrderID:         order.ID,
		CustomerEmail:   order.CustomerEmail,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		CustomerCity:    order.CustomerCity,
		Items:           notificationItems,
		Subtotal:        subtotal,
		DeliveryFee:     order.DeliveryFee,
		DiscountAmount:  order.DiscountAmount,
		PromoCode:       order.PromoCode,
		TotalAmount:     order.TotalAmount,
	}

	if err := s.publisher.PublishOrderCreated(msg); err != nil {
		logger.Error("[CreateOrder] publish order created", zap.String("order_id", order.ID), zap.String("error", err.Error()))
	}
}

func (s *orderAppImpl) ListOrders(ctx context.Context) ([]model.OrderWithItems, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		logger.Error("[ListOrders] list orders", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID string) (*model.OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return order, nil
}

// UpdateOrderStatus is the only mutation allowed on an order after creation.
// Promo usage is never decremented, not even on cancellation.
func (s *orderAppImpl) UpdateOrderStatus(ctx context.Context, orderID string, status constant.OrderStatus) error {
	if !constant.IsValidOrderStatus(status) {
		return cerr.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, string(status)); err != nil {
		if err == sql.ErrNoRows {
			return cerr.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[UpdateOrderStatus] update status", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.InvalidateTag(ctx, constant.CacheTagOrders); err != nil {
		logger.Warn("[UpdateOrderStatus] invalidate orders cache", zap.String("error", err.Error()))
	}
	return nil
}

func (s *orderAppImpl) SalesStats(ctx context.Context) (*model.SalesStats, error) {
	stats, err := s.orderRepo.GetSalesStats(ctx)
	if err != nil {
		logger.Error("[SalesStats] get sales stats", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = pricing.Round2(stats.TotalRevenue / float64(stats.TotalOrders))
	}
	stats.NetRevenue = pricing.Round2(stats.TotalRevenue - stats.TotalDiscounts)
	return stats, nil
}
