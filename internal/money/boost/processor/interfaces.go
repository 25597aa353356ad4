package processor

import (
	"context"

	"boost-server/internal/clients/assets"
	"boost-server/internal/clients/stripecheckout"
	"boost-server/internal/email"
	"boost-server/internal/store"

	"github.com/google/uuid"
)

// BoostStore is the slice of the store the boost lifecycle needs.
type BoostStore interface {
	CreateBoostCampaign(ctx context.Context, params store.CreateBoostCampaignParams) (store.BoostCampaign, error)
	GetBoostCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.BoostCampaign, error)
	GetBoostCampaignByCheckoutSessionID(ctx context.Context, sessionID string) (store.BoostCampaign, error)
	SetBoostCampaignCheckoutSession(ctx context.Context, campaignID uuid.UUID, sessionID string) error
	ApplyBoostPaymentOutcome(ctx context.Context, campaignID uuid.UUID, params store.ApplyBoostOutcomeParams) (store.BoostCampaign, error)
	IncrementBoostMetrics(ctx context.Context, campaignID uuid.UUID, deltas store.BoostMetricDeltas) error
}

// CheckoutGateway abstracts the payment gateway's hosted checkout API.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, params stripecheckout.CreateSessionParams) (stripecheckout.Session, error)
	ExpireCheckoutSession(ctx context.Context, sessionID string) error
}

// AssetPreviewer resolves display metadata for a promoted asset, best effort.
type AssetPreviewer interface {
	Preview(ctx context.Context, assetType string, assetID uuid.UUID) (assets.Preview, bool)
}

// ReceiptEmailer sends the transactional emails tied to payment outcomes.
type ReceiptEmailer interface {
	SendBoostReceipt(ctx context.Context, to string, data email.TemplateData) error
	SendBoostPaymentFailed(ctx context.Context, to string, data email.TemplateData) error
}
