package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Database
	DB() *sqlx.DB

	// Boost Campaign operations
	CreateBoostCampaign(ctx context.Context, params CreateBoostCampaignParams) (BoostCampaign, error)
	GetBoostCampaignByID(ctx context.Context, campaignID uuid.UUID) (BoostCampaign, error)
	GetBoostCampaignByCheckoutSessionID(ctx context.Context, sessionID string) (BoostCampaign, error)
	SetBoostCampaignCheckoutSession(ctx context.Context, campaignID uuid.UUID, sessionID string) error
	ApplyBoostPaymentOutcome(ctx context.Context, campaignID uuid.UUID, params ApplyBoostOutcomeParams) (BoostCampaign, error)
	GetBoostCampaignsByOwner(ctx context.Context, ownerID uuid.UUID) ([]BoostCampaign, error)
	ListBoostCampaigns(ctx context.Context, limit, offset int) ([]BoostCampaign, error)
	GetBoostPerformanceByAsset(ctx context.Context, ownerID uuid.UUID) ([]AssetPerformanceRow, error)
	IncrementBoostMetrics(ctx context.Context, campaignID uuid.UUID, deltas BoostMetricDeltas) error

	// Suggestion operations
	CreateSuggestion(ctx context.Context, params CreateSuggestionParams) (BoostSuggestion, error)
	GetSuggestionByID(ctx context.Context, suggestionID uuid.UUID) (BoostSuggestion, error)
	GetSuggestionsByOwner(ctx context.Context, ownerID uuid.UUID) ([]BoostSuggestion, error)
	ResolveSuggestion(ctx context.Context, suggestionID uuid.UUID, status string, boostCampaignID *uuid.UUID) (BoostSuggestion, error)
}
