package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hamzafer/KjopsMinne/internal/db"
	"github.com/hamzafer/KjopsMinne/internal/logger"
	"github.com/hamzafer/KjopsMinne/internal/ocr"
)

func main() {
	// No .env file is fine in deployed environments.
	_ = godotenv.Load()

	log := logger.Init()
	defer logger.Sync()

	log.Info("receipt OCR worker starting")

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool := db.ConnectPostgres()
	defer pool.Close()

	log.Info("connected to PostgreSQL")

	repo := ocr.NewRepository(pool)
	service := ocr.NewService(repo)

	interval := 2 * time.Second
	if raw := os.Getenv("OCR_POLL_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			interval = d
		}
	}

	log.Sugar().Infof("polling for uploaded receipts every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx := context.Background()
	for range ticker.C {
		if err := service.ProcessOne(ctx); err != nil {
			log.Sugar().Warnf("ocr error: %v", err)
		}
	}
}
