package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"venues/api"
	"venues/config"
	"venues/db"
	"venues/message"
	"venues/payments"
	"venues/service"
	observability "venues/trace"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	tp := observability.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := message.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	var provider payments.Provider
	switch cfg.PaymentProvider {
	case "stripe":
		provider = api.NewStripeProvider(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, cfg.ProviderTimeout)
	case "mock":
		provider = api.NewPaymentsMock()
	default:
		logrus.Fatalf("unknown payment provider: %s", cfg.PaymentProvider)
	}

	notificationsService := api.NewNotificationsServiceClient(cfg.NotificationsAddr)
	mailerService := api.NewMailerServiceClient(cfg.MailerAddr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = service.New(
		fmt.Sprintf(":%s", cfg.Port),
		cfg.JWTSecret,
		redisClient,
		conn,
		provider,
		notificationsService,
		mailerService,
	).Run(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("service stopped")
	}
}
