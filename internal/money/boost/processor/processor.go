package processor

import (
	"context"
	"errors"
	"fmt"

	"boost-server/internal/money/budget"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrBoostNotFound          = errors.New("boost not found")
	ErrBoostNotPending        = errors.New("boost is not awaiting payment")
	ErrInvalidBudget          = errors.New("daily budget must be positive")
	ErrInvalidDuration        = errors.New("duration must be a positive number of days")
	ErrInvalidAssetType       = errors.New("unsupported asset type")
	ErrUnknownCheckoutSession = errors.New("unknown checkout session")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrUnauthorized           = errors.New("unauthorized access to boost")
	ErrInvalidRedirect        = errors.New("redirect target must be on the web app origin")
	ErrMalformedGatewayEvent  = errors.New("malformed gateway event payload")
)

// BoostProcessor owns the boost payment lifecycle: creation in the
// pending state, checkout initiation against the gateway, and the single
// idempotent transition out of pending when the gateway reports an outcome.
type BoostProcessor struct {
	store     BoostStore
	gateway   CheckoutGateway
	previews  AssetPreviewer
	emailer   ReceiptEmailer
	webAppURI string
	logger    *observability.Logger
}

func New(
	boostStore BoostStore,
	gateway CheckoutGateway,
	previews AssetPreviewer,
	emailer ReceiptEmailer,
	webAppURI string,
	logger *observability.Logger,
) BoostProcessor {
	return BoostProcessor{
		store:     boostStore,
		gateway:   gateway,
		previews:  previews,
		emailer:   emailer,
		webAppURI: webAppURI,
		logger:    logger,
	}
}

// CreateBoostParams are the caller-supplied fields for a new boost. The total
// charge is derived here, not accepted from the caller.
type CreateBoostParams struct {
	OwnerID          uuid.UUID
	ProfileID        uuid.UUID
	Name             string
	AssetType        string
	AssetID          uuid.UUID
	Platform         string
	DailyBudgetCents int64
	DurationDays     int
}

// CreateBoostCampaign validates the budget request and creates the campaign
// awaiting payment. The total budget is fixed at creation so the amount
// charged at checkout always matches the quote shown to the owner.
func (p BoostProcessor) CreateBoostCampaign(ctx context.Context, params CreateBoostParams) (store.BoostCampaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "owner_id", Value: params.OwnerID.String()},
		observability.Field{Key: "asset_type", Value: params.AssetType},
	)

	if params.DailyBudgetCents <= 0 {
		return store.BoostCampaign{}, ErrInvalidBudget
	}
	if params.DurationDays <= 0 {
		return store.BoostCampaign{}, ErrInvalidDuration
	}
	switch params.AssetType {
	case store.AssetTypeClip, store.AssetTypeMeme, store.AssetTypeGif:
	default:
		return store.BoostCampaign{}, ErrInvalidAssetType
	}

	campaign, err := p.store.CreateBoostCampaign(ctx, store.CreateBoostCampaignParams{
		OwnerID:          params.OwnerID,
		ProfileID:        params.ProfileID,
		Name:             params.Name,
		AssetType:        params.AssetType,
		AssetID:          params.AssetID,
		Platform:         params.Platform,
		DailyBudgetCents: params.DailyBudgetCents,
		DurationDays:     params.DurationDays,
		TotalBudgetCents: budget.Total(params.DailyBudgetCents, params.DurationDays),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create boost campaign", err)
		return store.BoostCampaign{}, fmt.Errorf("failed to create boost campaign: %w", err)
	}

	p.logger.Info(ctx, "boost campaign created")
	return campaign, nil
}

// GetBoostCampaign fetches one campaign and enforces ownership.
func (p BoostProcessor) GetBoostCampaign(ctx context.Context, ownerID, campaignID uuid.UUID) (store.BoostCampaign, error) {
	campaign, err := p.store.GetBoostCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.BoostCampaign{}, ErrBoostNotFound
		}
		return store.BoostCampaign{}, fmt.Errorf("failed to get boost campaign: %w", err)
	}
	if campaign.OwnerID != ownerID {
		return store.BoostCampaign{}, ErrUnauthorized
	}
	return campaign, nil
}

// IngestMetrics applies delivery-pipeline counter deltas to a campaign.
func (p BoostProcessor) IngestMetrics(ctx context.Context, campaignID uuid.UUID, deltas store.BoostMetricDeltas) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "boost_id", Value: campaignID.String()})

	if err := p.store.IncrementBoostMetrics(ctx, campaignID, deltas); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBoostNotFound
		}
		p.logger.Error(ctx, "failed to ingest boost metrics", err)
		return fmt.Errorf("failed to ingest boost metrics: %w", err)
	}
	return nil
}
