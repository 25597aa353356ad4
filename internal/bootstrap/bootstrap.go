package bootstrap

import (
	"boost-server/internal/auth"
	"boost-server/internal/config"
	"boost-server/internal/observability"
	"boost-server/internal/store"
	"context"
	"fmt"

	analyticsHandler "boost-server/internal/analytics/handler"
	analyticsProcessor "boost-server/internal/analytics/processor"
	"boost-server/internal/clients/assets"
	"boost-server/internal/clients/mail"
	"boost-server/internal/clients/stripecheckout"
	"boost-server/internal/email"
	boostHandler "boost-server/internal/money/boost/handler"
	boostProcessor "boost-server/internal/money/boost/processor"
	suggestionHandler "boost-server/internal/suggestions/handler"
	suggestionProcessor "boost-server/internal/suggestions/processor"

	"github.com/google/uuid"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Auth
	Authenticator auth.Authenticator

	// Handlers
	BoostHandler      boostHandler.Handler
	AnalyticsHandler  analyticsHandler.Handler
	SuggestionHandler suggestionHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Run embedded migrations before opening the pool
	connectionString := cfg.Database.ConnectionString()
	if err := store.Migrate(connectionString); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize clients
	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}
	emailService := email.New(mailClient, cfg.Services.DefaultEmailSender, logger)

	checkoutClient := stripecheckout.New(cfg.Services.StripeSecretKey, logger)
	assetRegistry := assets.NewRegistry(cfg.Services.MediaAPIURI, logger)

	deps.Authenticator = auth.New(cfg.Auth.JWTSecret, logger)

	// Initialize boost processor and handler
	boostProc := boostProcessor.New(
		&deps.Store,
		checkoutClient,
		assetRegistry,
		emailService,
		cfg.Services.WebAppURI,
		logger,
	)
	deps.BoostHandler = boostHandler.New(boostProc, cfg.Services.StripeWebhookSecret, cfg.Services.MetricsIngestSecret, logger)

	// Initialize analytics processor and handler
	analyticsProc := analyticsProcessor.New(&deps.Store, previewAdapter{registry: assetRegistry}, logger)
	deps.AnalyticsHandler = analyticsHandler.New(analyticsProc, cfg.Services.MetricsIngestSecret, logger)

	// Initialize suggestion processor and handler
	suggestionProc := suggestionProcessor.New(&deps.Store, boostProc, logger)
	deps.SuggestionHandler = suggestionHandler.New(suggestionProc, logger)

	return deps, nil
}

// previewAdapter narrows the asset registry to the reporting layer's view of
// a preview.
type previewAdapter struct {
	registry *assets.Registry
}

func (a previewAdapter) Preview(ctx context.Context, assetType string, assetID uuid.UUID) (analyticsProcessor.Preview, bool) {
	preview, ok := a.registry.Preview(ctx, assetType, assetID)
	if !ok {
		return analyticsProcessor.Preview{}, false
	}
	return analyticsProcessor.Preview{Title: preview.Title, ThumbnailURL: preview.ThumbnailURL}, true
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if db := d.Store.DB(); db != nil {
		_ = db.Close()
	}
}
