package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/adapter/secondary/crypto"
	"github.com/cashflow/payments-api/internal/adapter/secondary/database"
	"github.com/cashflow/payments-api/internal/config"
	"github.com/cashflow/payments-api/internal/constant/model/db"
	"github.com/cashflow/payments-api/internal/core/service"
	"github.com/cashflow/payments-api/internal/logger"
	"github.com/cashflow/payments-api/internal/port/input"
)

// Seeds the default API user. Safe to run repeatedly: an existing username is
// left untouched.
func main() {
	username := flag.String("username", "serious_business", "username to provision")
	password := flag.String("password", "test_password", "plaintext password to hash and store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	dbConn, err := db.NewDB(cfg.Database.URL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbConn.Close()

	userRepo := database.NewGormUserRepository(dbConn.DB)
	userService := service.NewUserService(userRepo, crypto.NewBcryptHasher(), zlog)

	switch res := userService.AddUser(context.Background(), *username, *password).(type) {
	case input.AddUserSuccess:
		if res.Created {
			zlog.Info("seeded user", zap.String("username", *username))
		} else {
			zlog.Info("user already present", zap.String("username", *username))
		}
	default:
		zlog.Fatal("seeding user failed", zap.String("username", *username))
	}
}
