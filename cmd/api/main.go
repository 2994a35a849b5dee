package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	apihttp "github.com/cashflow/payments-api/internal/adapter/primary/http"
	"github.com/cashflow/payments-api/internal/adapter/secondary/crypto"
	"github.com/cashflow/payments-api/internal/adapter/secondary/database"
	"github.com/cashflow/payments-api/internal/adapter/secondary/messaging"
	"github.com/cashflow/payments-api/internal/adapter/secondary/token"
	"github.com/cashflow/payments-api/internal/config"
	"github.com/cashflow/payments-api/internal/constant/model/db"
	"github.com/cashflow/payments-api/internal/core/service"
	"github.com/cashflow/payments-api/internal/logger"
)

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

	// Initialize secondary adapter: Database
	dbConn, err := db.NewDB(cfg.Database.URL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbConn.Close()

	// Initialize secondary adapters: Repositories and Messaging (implement output ports)
	paymentRepo := database.NewGormPaymentRepository(dbConn.DB)
	userRepo := database.NewGormUserRepository(dbConn.DB)

	msgClient, err := messaging.NewRabbitMQClient(cfg.RabbitMQ.URL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer msgClient.Close()

	hasher := crypto.NewBcryptHasher()
	tokenIssuer := token.NewJWTIssuer(cfg.JWT.SigningKey, cfg.JWT.TTL.Std())

	// Initialize core services (implement input ports)
	paymentService := service.NewPaymentService(paymentRepo, msgClient, zlog)
	userService := service.NewUserService(userRepo, hasher, zlog)

	// Initialize primary adapters: HTTP handlers (use input ports)
	paymentHandler := apihttp.NewPaymentHandler(paymentService)
	authHandler := apihttp.NewAuthHandler(userService, tokenIssuer, zlog)

	// Initialize Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	e.POST("/v1/authenticate", authHandler.Authenticate)

	payments := e.Group("/v1/payments", apihttp.JWTAuth(tokenIssuer))
	payments.GET("", paymentHandler.GetPayments)
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.POST("/:id/approve", paymentHandler.ApprovePayment)
	payments.POST("/:id/cancel", paymentHandler.CancelPayment)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("starting API server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
