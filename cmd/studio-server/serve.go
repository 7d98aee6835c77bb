// cmd/studio-server/serve.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-growth/internal/common/config"
	"studio-growth/internal/common/database"
	"studio-growth/internal/common/logger"
	"studio-growth/internal/common/observability"
	"studio-growth/internal/content"
	enquiryrelay "studio-growth/internal/handlers/communication/enquiry-relay"
	listcontent "studio-growth/internal/handlers/content/list-content"
	calculateprojection "studio-growth/internal/handlers/growth-lab/calculate-projection"
	"studio-growth/internal/server"
	"studio-growth/pkg/registry"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func runServe(ctx context.Context, cfg *config.Config) error {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting studio server...",
		zap.String("version", version),
		zap.String("environment", cfg.App.Environment),
	)
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	reg, err := registry.Default()
	if err != nil {
		return fmt.Errorf("load endpoint registry: %w", err)
	}
	catalog, err := content.Default()
	if err != nil {
		return fmt.Errorf("load content catalog: %w", err)
	}

	// --- Cooldown store: redis when enabled, in process otherwise ---
	var (
		cooldown enquiryrelay.CooldownStore
		ready    server.Pinger
	)
	if cfg.Database.Redis.Enabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(ctx, func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return err
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")

		cooldown = enquiryrelay.NewRedisCooldown(rdb.Client)
		ready = rdb
	}

	// --- Email provider and studio alerts ---
	mailer, err := enquiryrelay.NewMailer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init %s mailer: %w", cfg.Enquiry.Provider, err)
	}
	if !mailer.Configured() {
		zapLog.Warn("email provider not configured, enquiries will be rejected", zap.String("provider", mailer.Provider()))
	}
	notifier, err := enquiryrelay.NewNotifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init sns notifier: %w", err)
	}

	// --- Handlers ---
	labCfg, err := calculateprojection.LoadConfig(cfg.GrowthLab)
	if err != nil {
		return err
	}
	projection, err := calculateprojection.NewHandler(labCfg, reg, obs, log)
	if err != nil {
		return fmt.Errorf("failed to create projection handler: %w", err)
	}

	relay, err := enquiryrelay.NewHandler(enquiryrelay.LoadConfig(cfg.Enquiry), reg, mailer, notifier, cooldown, obs, log)
	if err != nil {
		return fmt.Errorf("failed to create enquiry handler: %w", err)
	}

	srv, err := server.New(cfg, server.Options{
		Handlers: []server.Registrar{
			projection,
			relay,
			listcontent.NewHandler(catalog, log),
		},
		Redis: ready,
	}, log)
	if err != nil {
		return err
	}

	if err := srv.Run(ctx); err != nil {
		return err
	}
	zapLog.Info("Studio server stopped gracefully")
	return nil
}
