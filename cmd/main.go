package main

import (
	"net/http"

	orderapp "github.com/emmaeryne/amjednamoussa/application/order"
	productapp "github.com/emmaeryne/amjednamoussa/application/product"
	promoapp "github.com/emmaeryne/amjednamoussa/application/promo"
	userapp "github.com/emmaeryne/amjednamoussa/application/user"
	"github.com/emmaeryne/amjednamoussa/cmd/config"
	redisclient "github.com/emmaeryne/amjednamoussa/cmd/redis"
	categoryRepo "github.com/emmaeryne/amjednamoussa/repository/category"
	orderRepo "github.com/emmaeryne/amjednamoussa/repository/order"
	productRepo "github.com/emmaeryne/amjednamoussa/repository/product"
	promoRepo "github.com/emmaeryne/amjednamoussa/repository/promo"
	redisRepo "github.com/emmaeryne/amjednamoussa/repository/redis"
	txRepo "github.com/emmaeryne/amjednamoussa/repository/tx"
	userRepo "github.com/emmaeryne/amjednamoussa/repository/user"
	"github.com/emmaeryne/amjednamoussa/thirdparty/rabbitmq"
	"github.com/emmaeryne/amjednamoussa/transport"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title Namoussa Storefront API
// @version 1.0
// @description Storefront and admin API for the Namoussa clothing store
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Order-created events feed the notifier; the API still runs without the
	// broker, notifications are best-effort.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, order notifications disabled", zap.Error(err))
		publisher = nil
	} else {
		defer func() {
			_ = publisher.Close()
		}()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	PromoRepo := promoRepo.NewPromoRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	CategoryRepo := categoryRepo.NewCategoryRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo, CategoryRepo, RedisRepo)
	PromoApp := promoapp.NewPromoApp(PromoRepo, RedisRepo)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, PromoRepo, RedisRepo, publisher)

	httpTransport := transport.NewTransport(UserApp, ProductApp, PromoApp, OrderApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
