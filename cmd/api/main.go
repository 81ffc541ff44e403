package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/01moynul/taptosell-creatives/internal/ai"
	"github.com/01moynul/taptosell-creatives/internal/auth"
	"github.com/01moynul/taptosell-creatives/internal/config"
	"github.com/01moynul/taptosell-creatives/internal/credentials"
	"github.com/01moynul/taptosell-creatives/internal/database"
	"github.com/01moynul/taptosell-creatives/internal/handlers"
	"github.com/01moynul/taptosell-creatives/internal/routes"
	"github.com/01moynul/taptosell-creatives/internal/workflow"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	ctx := context.Background()

	// 1. --- Gemini Key & Generation Gateway ---
	keys := credentials.NewKeyStore(cfg.GeminiAPIKey)
	if !ai.IsUsableKey(keys.APIKey()) {
		logger.Warn("no usable GEMINI_API_KEY, generation runs on mock data until a key is selected")
	}

	aiService := ai.NewAIService(keys, cfg.TextModel, cfg.ImageModel, logger.With("component", "ai"))
	aiService.Delays = ai.DefaultMockDelays().Scale(cfg.MockDelayScale)

	// 2. --- Optional Usage Log (MySQL) ---
	var usage handlers.UsageReader
	if cfg.UsageDSN != "" {
		db, err := database.OpenDBWithDSN(cfg.UsageDSN)
		if err != nil {
			log.Fatalf("Failed to connect to usage database: %v", err)
		}
		defer db.Close()

		usageLog, err := database.NewUsageLog(ctx, db)
		if err != nil {
			log.Fatalf("Failed to prepare usage log: %v", err)
		}
		aiService.Usage = usageLog
		usage = usageLog
	}

	// 3. --- Credential Guard ---
	var host credentials.Host
	if cfg.CredentialSelection {
		host = keys
	}
	guard := credentials.NewGuard(ctx, host, logger.With("component", "credentials"))

	// 4. --- Sessions & Tokens ---
	tokens, err := auth.NewTokens(cfg.SessionSecret, 0)
	if err != nil {
		log.Fatalf("Failed to initialize session tokens: %v", err)
	}
	sessions := workflow.NewRegistry(aiService, guard, logger.With("component", "workflow"))

	app := &handlers.Handlers{
		Sessions:            sessions,
		Guard:               guard,
		Keys:                keys,
		Tokens:              tokens,
		Usage:               usage,
		Logger:              logger,
		CredentialSelection: cfg.CredentialSelection,
	}

	// 5. --- Background Worker: idle session reaper ---
	go func() {
		ticker := time.NewTicker(cfg.SessionReapInterval)
		defer ticker.Stop()

		logger.Info("session reaper started", "interval", cfg.SessionReapInterval, "idle_timeout", cfg.SessionIdleTimeout)
		for range ticker.C {
			if n := sessions.Reap(cfg.SessionIdleTimeout); n > 0 {
				logger.Info("reaped idle sessions", "removed", n, "live", sessions.Len())
			}
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app, tokens, cfg.CORSOrigin, logger)

	// --- Start Server ---
	logger.Info("starting TapToSell Creatives API server", "port", cfg.Port, "guard", guard.State())
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
