package store

import (
	"time"

	"github.com/google/uuid"
)

// BoostCampaign represents one paid promotion of one asset. The time window
// and payment fields stay NULL until the gateway confirms payment.
type BoostCampaign struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	OwnerID           uuid.UUID  `db:"owner_id" json:"owner_id"`
	ProfileID         uuid.UUID  `db:"profile_id" json:"profile_id"`
	Name              string     `db:"name" json:"name"`
	AssetType         string     `db:"asset_type" json:"asset_type"`
	AssetID           uuid.UUID  `db:"asset_id" json:"asset_id"`
	Platform          string     `db:"platform" json:"platform"`
	DailyBudgetCents  int64      `db:"daily_budget_cents" json:"daily_budget_cents"`
	DurationDays      int        `db:"duration_days" json:"duration_days"`
	TotalBudgetCents  int64      `db:"total_budget_cents" json:"total_budget_cents"`
	Status            string     `db:"status" json:"status"`
	PaymentStatus     string     `db:"payment_status" json:"payment_status"`
	CheckoutSessionID *string    `db:"checkout_session_id" json:"-"`
	PaymentReference  *string    `db:"payment_reference" json:"-"`
	PaidAt            *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	StartDate         *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate           *time.Time `db:"end_date" json:"end_date,omitempty"`
	SpentCents        int64      `db:"spent_cents" json:"spent_cents"`
	Impressions       int64      `db:"impressions" json:"impressions"`
	Clicks            int64      `db:"clicks" json:"clicks"`
	Reach             int64      `db:"reach" json:"reach"`
	Conversions       int64      `db:"conversions" json:"conversions"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// BoostSuggestion is a promotion proposal that, once approved, originates a
// boost campaign through the same create path callers use directly.
type BoostSuggestion struct {
	ID                        uuid.UUID  `db:"id" json:"id"`
	OwnerID                   uuid.UUID  `db:"owner_id" json:"owner_id"`
	ProfileID                 uuid.UUID  `db:"profile_id" json:"profile_id"`
	Name                      string     `db:"name" json:"name"`
	AssetType                 string     `db:"asset_type" json:"asset_type"`
	AssetID                   uuid.UUID  `db:"asset_id" json:"asset_id"`
	Platform                  string     `db:"platform" json:"platform"`
	SuggestedDailyBudgetCents int64      `db:"suggested_daily_budget_cents" json:"suggested_daily_budget_cents"`
	SuggestedDurationDays     int        `db:"suggested_duration_days" json:"suggested_duration_days"`
	Status                    string     `db:"status" json:"status"`
	BoostCampaignID           *uuid.UUID `db:"boost_campaign_id" json:"boost_campaign_id,omitempty"`
	CreatedAt                 time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time  `db:"updated_at" json:"updated_at"`
}

// AssetPerformanceRow holds the raw per-asset counter sums computed by the
// database. Derived rates are computed by the reporting processor, never
// stored.
type AssetPerformanceRow struct {
	AssetType       string    `db:"asset_type"`
	AssetID         uuid.UUID `db:"asset_id"`
	CampaignCount   int       `db:"campaign_count"`
	Impressions     int64     `db:"impressions"`
	Clicks          int64     `db:"clicks"`
	Reach           int64     `db:"reach"`
	SpentCents      int64     `db:"spent_cents"`
	Conversions     int64     `db:"conversions"`
	LatestCreatedAt time.Time `db:"latest_created_at"`
}
