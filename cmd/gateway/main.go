package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/icebreakapp/radar-gateway/internal/config"
	"github.com/icebreakapp/radar-gateway/internal/infrastructure/container"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Logger.WithError(err).Error("error closing application")
		}
	}()

	// Establish the platform session before any pipeline work
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.Sessions.Initialize(initCtx); err != nil {
		initCancel()
		app.Logger.WithError(err).Error("failed to establish platform session")
		os.Exit(1)
	}

	// Apply the stored radar preference: starts or keeps stopped the
	// location reporter and the feed poller
	if _, err := app.Radar.Load(initCtx); err != nil {
		app.Logger.WithError(err).Warn("failed to load radar preference, radar stays off")
	}
	initCancel()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			app.Logger.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	app.Logger.WithField("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).Info("radar gateway started")

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Logger.WithError(err).Error("server shutdown error")
		os.Exit(1)
	}

	app.Logger.Info("radar gateway exited properly")
}
