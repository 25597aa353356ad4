package processor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"boost-server/internal/money/budget"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/google/uuid"
)

// AnalyticsStore defines the database operations required by AnalyticsProcessor
type AnalyticsStore interface {
	GetBoostCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.BoostCampaign, error)
	GetBoostCampaignsByOwner(ctx context.Context, ownerID uuid.UUID) ([]store.BoostCampaign, error)
	ListBoostCampaigns(ctx context.Context, limit, offset int) ([]store.BoostCampaign, error)
	GetBoostPerformanceByAsset(ctx context.Context, ownerID uuid.UUID) ([]store.AssetPerformanceRow, error)
}

// AssetPreviewer enriches reporting rows with asset display metadata.
type AssetPreviewer interface {
	Preview(ctx context.Context, assetType string, assetID uuid.UUID) (Preview, bool)
}

// Preview mirrors the asset resolver's display metadata.
type Preview struct {
	Title        string
	ThumbnailURL string
}

var (
	ErrBoostNotFound = errors.New("boost not found")
	ErrUnauthorized  = errors.New("unauthorized access to boost")
)

const (
	defaultAdminPageSize = 50
	maxAdminPageSize     = 200
)

type AnalyticsProcessor struct {
	store    AnalyticsStore
	previews AssetPreviewer
	logger   *observability.Logger
	now      func() time.Time
}

func New(analyticsStore AnalyticsStore, previews AssetPreviewer, logger *observability.Logger) AnalyticsProcessor {
	return AnalyticsProcessor{
		store:    analyticsStore,
		previews: previews,
		logger:   logger,
		now:      time.Now,
	}
}

// BoostHistoryEntry is one campaign in the owner's history view. DaysRemaining
// is nil for campaigns that never got a time window, i.e. payment never
// confirmed.
type BoostHistoryEntry struct {
	store.BoostCampaign
	TotalBudgetUSD string `json:"total_budget_usd"`
	SpentUSD       string `json:"spent_usd"`
	DaysRemaining  *int   `json:"days_remaining,omitempty"`
}

// BoostHistoryResponse is the owner's boost history, newest first.
type BoostHistoryResponse struct {
	Boosts []BoostHistoryEntry `json:"boosts"`
	Total  int                 `json:"total"`
}

// AssetPerformanceEntry aggregates every boost of one asset. The rates are
// derived from the raw counter sums at read time and never stored.
type AssetPerformanceEntry struct {
	AssetType     string    `json:"asset_type"`
	AssetID       uuid.UUID `json:"asset_id"`
	AssetTitle    string    `json:"asset_title,omitempty"`
	CampaignCount int       `json:"campaign_count"`
	Impressions   int64     `json:"impressions"`
	Clicks        int64     `json:"clicks"`
	Reach         int64     `json:"reach"`
	Conversions   int64     `json:"conversions"`
	SpentCents    int64     `json:"spent_cents"`
	SpentUSD      string    `json:"spent_usd"`
	CTR           float64   `json:"ctr"`
	CPCCents      float64   `json:"cpc_cents"`
	CPMCents      float64   `json:"cpm_cents"`
}

// AssetPerformanceResponse is the per-asset rollup across all of an owner's
// boosts, most recently boosted asset first.
type AssetPerformanceResponse struct {
	Assets []AssetPerformanceEntry `json:"assets"`
}

// AdminBoostEntry is one campaign in the cross-owner admin listing. The asset
// title is display-only enrichment; the entry always carries the raw ids.
type AdminBoostEntry struct {
	store.BoostCampaign
	AssetTitle     string `json:"asset_title,omitempty"`
	TotalBudgetUSD string `json:"total_budget_usd"`
	DaysRemaining  *int   `json:"days_remaining,omitempty"`
}

// AdminBoostListResponse pages through campaigns across all owners.
type AdminBoostListResponse struct {
	Boosts []AdminBoostEntry `json:"boosts"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// GetBoostHistory returns every campaign the owner has created, newest first.
func (p *AnalyticsProcessor) GetBoostHistory(ctx context.Context, ownerID uuid.UUID) (BoostHistoryResponse, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "owner_id", Value: ownerID.String()})

	campaigns, err := p.store.GetBoostCampaignsByOwner(ctx, ownerID)
	if err != nil {
		p.logger.Error(ctx, "failed to get boost history", err)
		return BoostHistoryResponse{}, fmt.Errorf("failed to get boost history: %w", err)
	}

	now := p.now()
	entries := make([]BoostHistoryEntry, 0, len(campaigns))
	for _, campaign := range campaigns {
		entries = append(entries, BoostHistoryEntry{
			BoostCampaign:  campaign,
			TotalBudgetUSD: budget.FormatUSD(campaign.TotalBudgetCents),
			SpentUSD:       budget.FormatUSD(campaign.SpentCents),
			DaysRemaining:  daysRemaining(campaign, now),
		})
	}

	return BoostHistoryResponse{Boosts: entries, Total: len(entries)}, nil
}

// GetAssetPerformance rolls performance up per promoted asset and derives the
// click-through and cost rates from the summed counters.
func (p *AnalyticsProcessor) GetAssetPerformance(ctx context.Context, ownerID uuid.UUID) (AssetPerformanceResponse, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "owner_id", Value: ownerID.String()})

	rows, err := p.store.GetBoostPerformanceByAsset(ctx, ownerID)
	if err != nil {
		p.logger.Error(ctx, "failed to get asset performance", err)
		return AssetPerformanceResponse{}, fmt.Errorf("failed to get asset performance: %w", err)
	}

	entries := make([]AssetPerformanceEntry, 0, len(rows))
	for _, row := range rows {
		entry := AssetPerformanceEntry{
			AssetType:     row.AssetType,
			AssetID:       row.AssetID,
			CampaignCount: row.CampaignCount,
			Impressions:   row.Impressions,
			Clicks:        row.Clicks,
			Reach:         row.Reach,
			Conversions:   row.Conversions,
			SpentCents:    row.SpentCents,
			SpentUSD:      budget.FormatUSD(row.SpentCents),
			CTR:           rate(row.Clicks, row.Impressions, 100),
			CPCCents:      rate(row.SpentCents, row.Clicks, 1),
			CPMCents:      rate(row.SpentCents, row.Impressions, 1000),
		}
		if p.previews != nil {
			if preview, ok := p.previews.Preview(ctx, row.AssetType, row.AssetID); ok {
				entry.AssetTitle = preview.Title
			}
		}
		entries = append(entries, entry)
	}

	return AssetPerformanceResponse{Assets: entries}, nil
}

// AdminListBoosts pages through campaigns across all owners, newest first.
func (p *AnalyticsProcessor) AdminListBoosts(ctx context.Context, limit, offset int) (AdminBoostListResponse, error) {
	if limit <= 0 {
		limit = defaultAdminPageSize
	}
	if limit > maxAdminPageSize {
		limit = maxAdminPageSize
	}
	if offset < 0 {
		offset = 0
	}

	campaigns, err := p.store.ListBoostCampaigns(ctx, limit, offset)
	if err != nil {
		p.logger.Error(ctx, "failed to list boosts", err)
		return AdminBoostListResponse{}, fmt.Errorf("failed to list boosts: %w", err)
	}

	now := p.now()
	entries := make([]AdminBoostEntry, 0, len(campaigns))
	for _, campaign := range campaigns {
		entry := AdminBoostEntry{
			BoostCampaign:  campaign,
			TotalBudgetUSD: budget.FormatUSD(campaign.TotalBudgetCents),
			DaysRemaining:  daysRemaining(campaign, now),
		}
		if p.previews != nil {
			if preview, ok := p.previews.Preview(ctx, campaign.AssetType, campaign.AssetID); ok {
				entry.AssetTitle = preview.Title
			}
		}
		entries = append(entries, entry)
	}

	return AdminBoostListResponse{Boosts: entries, Limit: limit, Offset: offset}, nil
}

func daysRemaining(campaign store.BoostCampaign, now time.Time) *int {
	if campaign.EndDate == nil {
		return nil
	}
	days := budget.DaysRemaining(*campaign.EndDate, now)
	return &days
}

// rate computes numerator/denominator scaled by factor, rounded to two
// decimals, with a zero denominator yielding zero rather than NaN.
func rate(numerator, denominator, factor int64) float64 {
	if denominator == 0 {
		return 0
	}
	value := float64(numerator) / float64(denominator) * float64(factor)
	return math.Round(value*100) / 100
}
