package main

import (
	"AdDashboard/internal/adapters/hub"
	"AdDashboard/internal/adapters/postgres"
	"AdDashboard/internal/adapters/telegram"
	"AdDashboard/internal/core/domain"
	"AdDashboard/internal/core/ports"
	"AdDashboard/internal/core/services/activeentity"
	"AdDashboard/internal/core/services/filterselector"
	"AdDashboard/internal/shared/config"
	"AdDashboard/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Bool("database", cfg.Database.URL != "").
		Bool("alerts", cfg.Alerts.BotToken != "").
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Notification hub, one per process scope
	notifications := hub.NewNotificationHub(&baseLogger, hub.NewLogReporter(&baseLogger))

	// 4. Optional persistence
	var filterRepo ports.FilterSelectionRepository
	if cfg.Database.URL != "" {
		db, err := postgres.NewDB(ctx, cfg.Database.URL, cfg.Database.MaxConns, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to prepare database schema")
		}
		filterRepo = postgres.NewFilterSelectionRepository(db, &baseLogger)
	}

	// 5. Dashboard services
	ownerID := cfg.Dashboard.OwnerID
	if ownerID == uuid.Nil {
		ownerID = uuid.New()
		baseLogger.Warn().Str("owner_id", ownerID.String()).Msg("DASHBOARD_OWNER_ID not set, using a one-off owner")
	}
	filters := filterselector.NewService(ownerID, notifications, filterRepo, &baseLogger)
	entities := activeentity.NewService(notifications, &baseLogger)

	for _, scope := range cfg.Dashboard.FilterScopes {
		if err := filters.Load(ctx, scope); err != nil {
			baseLogger.Error().Err(err).Str("scope", scope).Msg("Failed to load filter scope")
		}
	}

	// 6. Optional Telegram alerts
	if cfg.Alerts.BotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.Alerts.BotToken)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to connect Telegram bot API")
		}
		api.Debug = cfg.IsDev()
		baseLogger.Info().Str("username", api.Self.UserName).Msg("Bot API connected")

		forwarder := telegram.NewAlertForwarder(notifications, telegram.NewClient(api, &baseLogger), cfg.Alerts.ChatID, &baseLogger)
		if err := forwarder.Start(ctx); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to start alert forwarder")
		}
		defer forwarder.Stop()
	}

	// 7. Initial selection, published once every subscriber is in place
	if cfg.Dashboard.AccountID != uuid.Nil {
		account := domain.EntityRef{Kind: domain.EntityAccount, ID: cfg.Dashboard.AccountID}
		if err := entities.SetActive(account); err != nil {
			baseLogger.Error().Err(err).Str("account_id", account.ID.String()).Msg("Failed to select startup account")
		}
	}

	baseLogger.Info().Msg("Dashboard core started")
	<-ctx.Done()
	baseLogger.Info().Msg("Shutting down")
}
