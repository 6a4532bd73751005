package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LordDeatHunter/Movienite/config"
	"github.com/LordDeatHunter/Movienite/database"
	"github.com/LordDeatHunter/Movienite/events"
	"github.com/LordDeatHunter/Movienite/handlers"
	"github.com/LordDeatHunter/Movienite/logger"
	"github.com/LordDeatHunter/Movienite/scraper"
	"github.com/LordDeatHunter/Movienite/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	slog.Info("Initializing Movienite components...")

	services.InitAuth(cfg)
	services.InitDiscordOAuth(cfg)

	if err := database.Connect(cfg); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := database.SeedAdmins(cfg); err != nil {
		slog.Error("Failed to seed admins", "error", err)
		os.Exit(1)
	}

	if err := database.ImportLegacyCSV(cfg); err != nil {
		slog.Error("Failed to import legacy CSV", "error", err)
		os.Exit(1)
	}

	hub := events.NewHub()
	ingestor := services.NewIngestor(scraper.New(), hub)
	app := handlers.New(cfg, hub, ingestor)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: app.Routes(),
	}

	go func() {
		slog.Info("Movienite is starting", "addr", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")

	// Closing the hub ends every SSE stream so Shutdown can drain
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
