package processor

import (
	"context"
	"testing"
	"time"

	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsStore struct {
	campaigns   []store.BoostCampaign
	performance []store.AssetPerformanceRow
}

func (f *fakeAnalyticsStore) GetBoostCampaignByID(_ context.Context, campaignID uuid.UUID) (store.BoostCampaign, error) {
	for _, campaign := range f.campaigns {
		if campaign.ID == campaignID {
			return campaign, nil
		}
	}
	return store.BoostCampaign{}, store.ErrNotFound
}

func (f *fakeAnalyticsStore) GetBoostCampaignsByOwner(_ context.Context, ownerID uuid.UUID) ([]store.BoostCampaign, error) {
	var out []store.BoostCampaign
	for _, campaign := range f.campaigns {
		if campaign.OwnerID == ownerID {
			out = append(out, campaign)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsStore) ListBoostCampaigns(_ context.Context, limit, offset int) ([]store.BoostCampaign, error) {
	if offset >= len(f.campaigns) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.campaigns) {
		end = len(f.campaigns)
	}
	return f.campaigns[offset:end], nil
}

func (f *fakeAnalyticsStore) GetBoostPerformanceByAsset(_ context.Context, _ uuid.UUID) ([]store.AssetPerformanceRow, error) {
	return f.performance, nil
}

type fakePreviewer struct {
	titles map[uuid.UUID]string
}

func (f *fakePreviewer) Preview(_ context.Context, _ string, assetID uuid.UUID) (Preview, bool) {
	title, ok := f.titles[assetID]
	return Preview{Title: title}, ok
}

func newAnalyticsProcessor(s *fakeAnalyticsStore, previews AssetPreviewer, now time.Time) AnalyticsProcessor {
	p := New(s, previews, observability.NewLogger())
	p.now = func() time.Time { return now }
	return p
}

func TestGetBoostHistoryDaysRemaining(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	activeEnd := now.Add(3 * 24 * time.Hour)
	partialEnd := now.Add(36 * time.Hour)
	pastEnd := now.Add(-24 * time.Hour)

	fake := &fakeAnalyticsStore{campaigns: []store.BoostCampaign{
		{ID: uuid.New(), OwnerID: ownerID, Status: store.BoostStatusActive, TotalBudgetCents: 7000, EndDate: &activeEnd},
		{ID: uuid.New(), OwnerID: ownerID, Status: store.BoostStatusActive, TotalBudgetCents: 3000, EndDate: &partialEnd},
		{ID: uuid.New(), OwnerID: ownerID, Status: store.BoostStatusCompleted, TotalBudgetCents: 1500, EndDate: &pastEnd},
		{ID: uuid.New(), OwnerID: ownerID, Status: store.BoostStatusPendingPayment, TotalBudgetCents: 2000},
	}}
	p := newAnalyticsProcessor(fake, nil, now)

	resp, err := p.GetBoostHistory(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, resp.Boosts, 4)
	assert.Equal(t, 4, resp.Total)

	require.NotNil(t, resp.Boosts[0].DaysRemaining)
	assert.Equal(t, 3, *resp.Boosts[0].DaysRemaining)

	// A partial day still counts as a remaining day.
	require.NotNil(t, resp.Boosts[1].DaysRemaining)
	assert.Equal(t, 2, *resp.Boosts[1].DaysRemaining)

	require.NotNil(t, resp.Boosts[2].DaysRemaining)
	assert.Equal(t, 0, *resp.Boosts[2].DaysRemaining)

	// Never-paid campaigns have no window at all.
	assert.Nil(t, resp.Boosts[3].DaysRemaining)
	assert.Equal(t, "$20.00", resp.Boosts[3].TotalBudgetUSD)
}

func TestGetAssetPerformanceDerivesRates(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()

	// Two campaigns for the same clip: (1000, 20, 500) + (2000, 10, 300).
	fake := &fakeAnalyticsStore{performance: []store.AssetPerformanceRow{
		{
			AssetType:     store.AssetTypeClip,
			AssetID:       assetID,
			CampaignCount: 2,
			Impressions:   3000,
			Clicks:        30,
			SpentCents:    800,
			Reach:         2500,
			Conversions:   4,
		},
	}}
	previews := &fakePreviewer{titles: map[uuid.UUID]string{assetID: "Skate fail compilation"}}
	p := newAnalyticsProcessor(fake, previews, time.Now())

	resp, err := p.GetAssetPerformance(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, resp.Assets, 1)

	entry := resp.Assets[0]
	assert.Equal(t, 2, entry.CampaignCount)
	assert.Equal(t, int64(3000), entry.Impressions)
	assert.Equal(t, int64(30), entry.Clicks)
	assert.Equal(t, int64(800), entry.SpentCents)
	assert.InDelta(t, 1.0, entry.CTR, 0.001)
	assert.InDelta(t, 26.67, entry.CPCCents, 0.001)
	assert.InDelta(t, 266.67, entry.CPMCents, 0.001)
	assert.Equal(t, "$8.00", entry.SpentUSD)
	assert.Equal(t, "Skate fail compilation", entry.AssetTitle)
}

func TestGetAssetPerformanceZeroDenominators(t *testing.T) {
	fake := &fakeAnalyticsStore{performance: []store.AssetPerformanceRow{
		{AssetType: store.AssetTypeMeme, AssetID: uuid.New(), CampaignCount: 1},
	}}
	p := newAnalyticsProcessor(fake, nil, time.Now())

	resp, err := p.GetAssetPerformance(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, resp.Assets, 1)

	entry := resp.Assets[0]
	assert.Zero(t, entry.CTR)
	assert.Zero(t, entry.CPCCents)
	assert.Zero(t, entry.CPMCents)
}

func TestAdminListBoostsEnrichesAssetTitles(t *testing.T) {
	titledAsset := uuid.New()
	untitledAsset := uuid.New()

	fake := &fakeAnalyticsStore{campaigns: []store.BoostCampaign{
		{ID: uuid.New(), OwnerID: uuid.New(), AssetType: store.AssetTypeClip, AssetID: titledAsset, TotalBudgetCents: 7000},
		{ID: uuid.New(), OwnerID: uuid.New(), AssetType: store.AssetTypeGif, AssetID: untitledAsset, TotalBudgetCents: 3000},
	}}
	previews := &fakePreviewer{titles: map[uuid.UUID]string{titledAsset: "Skate fail compilation"}}
	p := newAnalyticsProcessor(fake, previews, time.Now())

	resp, err := p.AdminListBoosts(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Boosts, 2)

	assert.Equal(t, "Skate fail compilation", resp.Boosts[0].AssetTitle)
	// A missing preview leaves the raw ids to identify the asset.
	assert.Empty(t, resp.Boosts[1].AssetTitle)
	assert.Equal(t, untitledAsset, resp.Boosts[1].AssetID)
}

func TestAdminListBoostsClampsPaging(t *testing.T) {
	var campaigns []store.BoostCampaign
	for i := 0; i < 5; i++ {
		campaigns = append(campaigns, store.BoostCampaign{ID: uuid.New(), OwnerID: uuid.New()})
	}
	fake := &fakeAnalyticsStore{campaigns: campaigns}
	p := newAnalyticsProcessor(fake, nil, time.Now())

	resp, err := p.AdminListBoosts(context.Background(), 0, -3)
	require.NoError(t, err)
	assert.Equal(t, defaultAdminPageSize, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	assert.Len(t, resp.Boosts, 5)

	resp, err = p.AdminListBoosts(context.Background(), 10000, 2)
	require.NoError(t, err)
	assert.Equal(t, maxAdminPageSize, resp.Limit)
	assert.Len(t, resp.Boosts, 3)
}
