package main

import (
	"context"
	"net/http"

	"github.com/emmaeryne/amjednamoussa/application/notification"
	"github.com/emmaeryne/amjednamoussa/cmd/config"
	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/emmaeryne/amjednamoussa/thirdparty/rabbitmq"
	"github.com/emmaeryne/amjednamoussa/thirdparty/resend"
	"github.com/emmaeryne/amjednamoussa/transport"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting notifier", zap.String("env", cfg.Environment))

	mailer := resend.NewClient(cfg.Notifier.ResendAPIKey)
	NotificationApp := notification.NewNotificationApp(cfg, mailer)

	// Drain order-created events published by the storefront backend. The
	// HTTP endpoint below stays available for direct invocation either way.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		func(ctx context.Context, msg *model.OrderNotificationRequest) error {
			_, err := NotificationApp.Process(ctx, msg)
			return err
		})
	if err != nil {
		logger.Warn("err connect rabbitmq, queue consumption disabled", zap.Error(err))
	} else {
		defer func() {
			_ = consumer.Close()
		}()
		if err := consumer.Start(ctx); err != nil {
			logger.Fatal("err start consumer", zap.Error(err))
		}
	}

	httpTransport := transport.NewNotifierTransport(NotificationApp, cfg.Notifier.InternalAPIKey)

	server := &http.Server{
		Addr:         ":" + cfg.Notifier.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("Notifier HTTP server running", zap.String("port", cfg.Notifier.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
