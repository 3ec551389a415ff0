package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"prodstats/internal"
	"prodstats/internal/config"
	"prodstats/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, _ := internal.ParseLogLevel(appConfig.Log.Level)
	logger := internal.NewLoggerWithFormat(level, appConfig.Log.Format)
	defer logger.Sync()

	gin.SetMode(appConfig.Server.GinMode)

	server, err := ui.NewServer(appConfig, logger)
	if err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	var diagnostics *ui.Diagnostics
	if appConfig.Diagnostics.Enabled {
		diagnostics = ui.NewDiagnostics(server.Store(), logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(":" + appConfig.Server.Port)
	})
	if diagnostics != nil {
		g.Go(func() error {
			logger.Info("Profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Diagnostics.Port)
			return diagnostics.Start(":" + appConfig.Diagnostics.Port)
		})
	}

	// Graceful shutdown once a signal arrives or a listener fails
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()

		if diagnostics != nil {
			if err := diagnostics.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Diagnostics shutdown error: %v", err)
			}
		}
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
