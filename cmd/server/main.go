package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kyanaldridge/Ranko-sub002/internal/api"
	"github.com/kyanaldridge/Ranko-sub002/internal/publish"
	"github.com/kyanaldridge/Ranko-sub002/internal/search"
	"github.com/kyanaldridge/Ranko-sub002/internal/storage"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	port := flag.String("port", getEnv("PORT", "8080"), "Server port")
	dbPath := flag.String("db", getEnv("DB_PATH", "./ranko.db"), "SQLite database path")
	timeout := flag.Duration("publish-timeout", publish.DefaultTimeout, "Per-destination publish timeout")
	debug := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	logger := newLogger(*debug)
	defer logger.Sync()

	store, err := storage.New(*dbPath)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	index, err := search.NewIndex(store.DB())
	if err != nil {
		logger.Fatal("failed to initialize search index", zap.Error(err))
	}

	publisher := publish.New(store, index, *timeout, logger)
	server := api.New(store, index, publisher, logger)

	logger.Info("ranko API starting",
		zap.String("addr", "http://localhost:"+*port),
		zap.String("database", *dbPath))

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		os.Exit(1)
	}
	return logger
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
