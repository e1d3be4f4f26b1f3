package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipedex/internal/catalog"
	"recipedex/internal/config"
	"recipedex/internal/gateway/rest"
	"recipedex/internal/logging"
	"recipedex/internal/server"
	"recipedex/internal/storage/mongo"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Shutdown()

	slog.Info("Starting Recipedex query service", "addr", cfg.Server.Addr())

	// 2. Initialize Storage Backend
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongo.NewBackend(ctx, cfg.Storage.MongoURI, cfg.Storage.Database, cfg.Storage.Collection)
	if err != nil {
		slog.Error("Failed to connect to storage backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("Error closing storage backend", "error", err)
		}
	}()
	slog.Info("Connected to MongoDB")

	// 3. Initialize Query Engine and Transport
	engine := catalog.NewEngine(store)
	handler := rest.NewHandler(engine)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	// 4. Run until interrupted
	srv := server.New(cfg.Server, mux, slog.Default())

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(runCtx); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
