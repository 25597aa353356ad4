package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateBoostCampaignParams represents parameters for creating a boost campaign
type CreateBoostCampaignParams struct {
	OwnerID          uuid.UUID
	ProfileID        uuid.UUID
	Name             string
	AssetType        string
	AssetID          uuid.UUID
	Platform         string
	DailyBudgetCents int64
	DurationDays     int
	TotalBudgetCents int64
}

// ApplyBoostOutcomeParams carries the fields set by the single payment-outcome
// transition. Success fills every field; failure only status/payment status.
type ApplyBoostOutcomeParams struct {
	Status           string
	PaymentStatus    string
	PaymentReference *string
	PaidAt           *time.Time
	StartDate        *time.Time
	EndDate          *time.Time
}

// BoostMetricDeltas holds additive counter updates produced by the delivery
// pipeline.
type BoostMetricDeltas struct {
	SpentCents  int64
	Impressions int64
	Clicks      int64
	Reach       int64
	Conversions int64
}

const sqlCreateBoostCampaign = `
INSERT INTO boost_campaigns (owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents,
          status, payment_status, checkout_session_id, payment_reference, paid_at, start_date, end_date,
          spent_cents, impressions, clicks, reach, conversions, created_at, updated_at
`

// CreateBoostCampaign creates a new boost campaign in pending_payment/pending
func (s *Store) CreateBoostCampaign(ctx context.Context, params CreateBoostCampaignParams) (BoostCampaign, error) {
	var campaign BoostCampaign
	err := s.db.GetContext(ctx, &campaign, sqlCreateBoostCampaign,
		params.OwnerID,
		params.ProfileID,
		params.Name,
		params.AssetType,
		params.AssetID,
		params.Platform,
		params.DailyBudgetCents,
		params.DurationDays,
		params.TotalBudgetCents)
	if err != nil {
		s.logger.Error(ctx, "failed to create boost campaign", err)
		return BoostCampaign{}, fmt.Errorf("failed to create boost campaign: %w", err)
	}
	return campaign, nil
}

const sqlGetBoostCampaignByID = `
SELECT id, owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents,
       status, payment_status, checkout_session_id, payment_reference, paid_at, start_date, end_date,
       spent_cents, impressions, clicks, reach, conversions, created_at, updated_at
FROM boost_campaigns
WHERE id = $1
`

// GetBoostCampaignByID retrieves a boost campaign by ID
func (s *Store) GetBoostCampaignByID(ctx context.Context, campaignID uuid.UUID) (BoostCampaign, error) {
	var campaign BoostCampaign
	err := s.db.GetContext(ctx, &campaign, sqlGetBoostCampaignByID, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BoostCampaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get boost campaign by id", err)
		return BoostCampaign{}, fmt.Errorf("failed to get boost campaign by id: %w", err)
	}
	return campaign, nil
}

const sqlGetBoostCampaignByCheckoutSessionID = `
SELECT id, owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents,
       status, payment_status, checkout_session_id, payment_reference, paid_at, start_date, end_date,
       spent_cents, impressions, clicks, reach, conversions, created_at, updated_at
FROM boost_campaigns
WHERE checkout_session_id = $1
`

// GetBoostCampaignByCheckoutSessionID resolves the gateway's correlation key
// to its campaign through the unique partial index.
func (s *Store) GetBoostCampaignByCheckoutSessionID(ctx context.Context, sessionID string) (BoostCampaign, error) {
	var campaign BoostCampaign
	err := s.db.GetContext(ctx, &campaign, sqlGetBoostCampaignByCheckoutSessionID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BoostCampaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get boost campaign by checkout session id", err)
		return BoostCampaign{}, fmt.Errorf("failed to get boost campaign by checkout session id: %w", err)
	}
	return campaign, nil
}

const sqlSetBoostCampaignCheckoutSession = `
UPDATE boost_campaigns
SET checkout_session_id = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// SetBoostCampaignCheckoutSession stores the gateway session id on a campaign
func (s *Store) SetBoostCampaignCheckoutSession(ctx context.Context, campaignID uuid.UUID, sessionID string) error {
	res, err := s.db.ExecContext(ctx, sqlSetBoostCampaignCheckoutSession, campaignID, sessionID)
	if err != nil {
		s.logger.Error(ctx, "failed to set checkout session id", err)
		return fmt.Errorf("failed to set checkout session id: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		s.logger.Error(ctx, "failed to get rows affected", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlApplyBoostPaymentOutcome = `
UPDATE boost_campaigns
SET status = $2,
    payment_status = $3,
    payment_reference = $4,
    paid_at = $5,
    start_date = $6,
    end_date = $7,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND payment_status = 'pending'
RETURNING id, owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents,
          status, payment_status, checkout_session_id, payment_reference, paid_at, start_date, end_date,
          spent_cents, impressions, clicks, reach, conversions, created_at, updated_at
`

// ApplyBoostPaymentOutcome is the only mutator of status, payment status and
// the time window. The payment_status = 'pending' guard makes the transition a
// single atomic check-and-set: concurrent duplicate webhook deliveries cannot
// both win, and the loser gets ErrOutcomeAlreadyApplied.
func (s *Store) ApplyBoostPaymentOutcome(ctx context.Context, campaignID uuid.UUID, params ApplyBoostOutcomeParams) (BoostCampaign, error) {
	var campaign BoostCampaign
	err := s.db.GetContext(ctx, &campaign, sqlApplyBoostPaymentOutcome,
		campaignID,
		params.Status,
		params.PaymentStatus,
		params.PaymentReference,
		params.PaidAt,
		params.StartDate,
		params.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BoostCampaign{}, ErrOutcomeAlreadyApplied
		}
		s.logger.Error(ctx, "failed to apply boost payment outcome", err)
		return BoostCampaign{}, fmt.Errorf("failed to apply boost payment outcome: %w", err)
	}
	return campaign, nil
}

const sqlGetBoostCampaignsByOwner = `
SELECT id, owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents,
       status, payment_status, checkout_session_id, payment_reference, paid_at, start_date, end_date,
       spent_cents, impressions, clicks, reach, conversions, created_at, updated_at
FROM boost_campaigns
WHERE owner_id = $1
ORDER BY created_at DESC
`

// GetBoostCampaignsByOwner retrieves all campaigns for an owner, newest first
func (s *Store) GetBoostCampaignsByOwner(ctx context.Context, ownerID uuid.UUID) ([]BoostCampaign, error) {
	var campaigns []BoostCampaign
	err := s.db.SelectContext(ctx, &campaigns, sqlGetBoostCampaignsByOwner, ownerID)
	if err != nil {
		s.logger.Error(ctx, "failed to get boost campaigns by owner", err)
		return nil, fmt.Errorf("failed to get boost campaigns by owner: %w", err)
	}
	return campaigns, nil
}

const sqlListBoostCampaigns = `
SELECT id, owner_id, profile_id, name, asset_type, asset_id, platform, daily_budget_cents, duration_days, total_budget_cents,
       status, payment_status, checkout_session_id, payment_reference, paid_at, start_date, end_date,
       spent_cents, impressions, clicks, reach, conversions, created_at, updated_at
FROM boost_campaigns
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

// ListBoostCampaigns retrieves campaigns across all owners for the admin view
func (s *Store) ListBoostCampaigns(ctx context.Context, limit, offset int) ([]BoostCampaign, error) {
	var campaigns []BoostCampaign
	err := s.db.SelectContext(ctx, &campaigns, sqlListBoostCampaigns, limit, offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list boost campaigns", err)
		return nil, fmt.Errorf("failed to list boost campaigns: %w", err)
	}
	return campaigns, nil
}

const sqlGetBoostPerformanceByAsset = `
SELECT asset_type, asset_id,
       COUNT(*)::int AS campaign_count,
       COALESCE(SUM(impressions), 0) AS impressions,
       COALESCE(SUM(clicks), 0) AS clicks,
       COALESCE(SUM(reach), 0) AS reach,
       COALESCE(SUM(spent_cents), 0) AS spent_cents,
       COALESCE(SUM(conversions), 0) AS conversions,
       MAX(created_at) AS latest_created_at
FROM boost_campaigns
WHERE owner_id = $1
GROUP BY asset_type, asset_id
ORDER BY MAX(created_at) DESC
`

// GetBoostPerformanceByAsset sums raw counters per promoted asset. Rates are
// derived by the reporting processor from these sums.
func (s *Store) GetBoostPerformanceByAsset(ctx context.Context, ownerID uuid.UUID) ([]AssetPerformanceRow, error) {
	var rows []AssetPerformanceRow
	err := s.db.SelectContext(ctx, &rows, sqlGetBoostPerformanceByAsset, ownerID)
	if err != nil {
		s.logger.Error(ctx, "failed to get boost performance by asset", err)
		return nil, fmt.Errorf("failed to get boost performance by asset: %w", err)
	}
	return rows, nil
}

const sqlIncrementBoostMetrics = `
UPDATE boost_campaigns
SET spent_cents = spent_cents + $2,
    impressions = impressions + $3,
    clicks = clicks + $4,
    reach = reach + $5,
    conversions = conversions + $6,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
`

// IncrementBoostMetrics adds delivery-pipeline counter deltas to a campaign
func (s *Store) IncrementBoostMetrics(ctx context.Context, campaignID uuid.UUID, deltas BoostMetricDeltas) error {
	res, err := s.db.ExecContext(ctx, sqlIncrementBoostMetrics, campaignID,
		deltas.SpentCents, deltas.Impressions, deltas.Clicks, deltas.Reach, deltas.Conversions)
	if err != nil {
		s.logger.Error(ctx, "failed to increment boost metrics", err)
		return fmt.Errorf("failed to increment boost metrics: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		s.logger.Error(ctx, "failed to get rows affected", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
