package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/adapter/secondary/messaging"
	"github.com/cashflow/payments-api/internal/config"
	"github.com/cashflow/payments-api/internal/logger"
	"github.com/cashflow/payments-api/internal/port/output"
)

// The worker tails the payment lifecycle stream and writes one audit entry
// per event.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize secondary adapter: Messaging (concrete type for worker)
	msgClient, err := messaging.NewRabbitMQClientConcrete(cfg.RabbitMQ.URL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer msgClient.Close()

	// Start consuming events
	err = msgClient.ConsumePaymentEvents(func(event output.PaymentEvent) error {
		zlog.Info("payment lifecycle event",
			zap.String("event", string(event.Kind)),
			zap.String("payment_id", event.PaymentID.String()),
			zap.Time("occurred_at", event.Timestamp))
		return nil
	})
	if err != nil {
		zlog.Fatal("failed to start consuming events", zap.Error(err))
	}

	zlog.Info("payment audit worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down worker")
}
