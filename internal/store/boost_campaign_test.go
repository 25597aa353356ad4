package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCampaign(t *testing.T, s Store, ownerID uuid.UUID) BoostCampaign {
	t.Helper()
	campaign, err := s.CreateBoostCampaign(context.Background(), CreateBoostCampaignParams{
		OwnerID:          ownerID,
		ProfileID:        uuid.New(),
		Name:             "Test boost",
		AssetType:        AssetTypeClip,
		AssetID:          uuid.New(),
		Platform:         "instagram",
		DailyBudgetCents: 1000,
		DurationDays:     7,
		TotalBudgetCents: 7000,
	})
	require.NoError(t, err)
	return campaign
}

func TestCreateBoostCampaignDefaults(t *testing.T) {
	td := SetupTestDB(t)

	campaign := createTestCampaign(t, td.Store, uuid.New())

	assert.Equal(t, BoostStatusPendingPayment, campaign.Status)
	assert.Equal(t, PaymentStatusPending, campaign.PaymentStatus)
	assert.Nil(t, campaign.CheckoutSessionID)
	assert.Nil(t, campaign.PaidAt)
	assert.Nil(t, campaign.StartDate)
	assert.Nil(t, campaign.EndDate)
	assert.Zero(t, campaign.SpentCents)
}

func TestGetBoostCampaignByCheckoutSessionID(t *testing.T) {
	td := SetupTestDB(t)
	ctx := context.Background()

	campaign := createTestCampaign(t, td.Store, uuid.New())

	_, err := td.Store.GetBoostCampaignByCheckoutSessionID(ctx, "cs_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, td.Store.SetBoostCampaignCheckoutSession(ctx, campaign.ID, "cs_abc"))

	got, err := td.Store.GetBoostCampaignByCheckoutSessionID(ctx, "cs_abc")
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, got.ID)
}

func TestCheckoutSessionUniqueness(t *testing.T) {
	td := SetupTestDB(t)
	ctx := context.Background()

	first := createTestCampaign(t, td.Store, uuid.New())
	second := createTestCampaign(t, td.Store, uuid.New())

	require.NoError(t, td.Store.SetBoostCampaignCheckoutSession(ctx, first.ID, "cs_dup"))
	assert.Error(t, td.Store.SetBoostCampaignCheckoutSession(ctx, second.ID, "cs_dup"))
}

func TestApplyBoostPaymentOutcomeOnceOnly(t *testing.T) {
	td := SetupTestDB(t)
	ctx := context.Background()

	campaign := createTestCampaign(t, td.Store, uuid.New())

	now := time.Now().UTC().Truncate(time.Microsecond)
	end := now.AddDate(0, 0, 7)
	ref := "pi_123"
	params := ApplyBoostOutcomeParams{
		Status:           BoostStatusActive,
		PaymentStatus:    PaymentStatusPaid,
		PaymentReference: &ref,
		PaidAt:           &now,
		StartDate:        &now,
		EndDate:          &end,
	}

	updated, err := td.Store.ApplyBoostPaymentOutcome(ctx, campaign.ID, params)
	require.NoError(t, err)
	assert.Equal(t, BoostStatusActive, updated.Status)
	assert.Equal(t, PaymentStatusPaid, updated.PaymentStatus)
	require.NotNil(t, updated.EndDate)
	assert.WithinDuration(t, end, *updated.EndDate, time.Second)

	// The guard makes every repeat a no-op, for either outcome.
	_, err = td.Store.ApplyBoostPaymentOutcome(ctx, campaign.ID, params)
	assert.ErrorIs(t, err, ErrOutcomeAlreadyApplied)

	_, err = td.Store.ApplyBoostPaymentOutcome(ctx, campaign.ID, ApplyBoostOutcomeParams{
		Status:        BoostStatusCancelled,
		PaymentStatus: PaymentStatusFailed,
	})
	assert.ErrorIs(t, err, ErrOutcomeAlreadyApplied)

	got, err := td.Store.GetBoostCampaignByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, got.PaymentStatus)
}

func TestIncrementBoostMetricsAndRollup(t *testing.T) {
	td := SetupTestDB(t)
	ctx := context.Background()

	ownerID := uuid.New()
	assetID := uuid.New()

	var campaigns []BoostCampaign
	for i := 0; i < 2; i++ {
		campaign, err := td.Store.CreateBoostCampaign(ctx, CreateBoostCampaignParams{
			OwnerID:          ownerID,
			ProfileID:        uuid.New(),
			Name:             "Rollup boost",
			AssetType:        AssetTypeClip,
			AssetID:          assetID,
			Platform:         "instagram",
			DailyBudgetCents: 500,
			DurationDays:     3,
			TotalBudgetCents: 1500,
		})
		require.NoError(t, err)
		campaigns = append(campaigns, campaign)
	}

	require.NoError(t, td.Store.IncrementBoostMetrics(ctx, campaigns[0].ID, BoostMetricDeltas{SpentCents: 500, Impressions: 1000, Clicks: 20}))
	require.NoError(t, td.Store.IncrementBoostMetrics(ctx, campaigns[1].ID, BoostMetricDeltas{SpentCents: 300, Impressions: 2000, Clicks: 10}))

	rows, err := td.Store.GetBoostPerformanceByAsset(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 2, rows[0].CampaignCount)
	assert.Equal(t, int64(3000), rows[0].Impressions)
	assert.Equal(t, int64(30), rows[0].Clicks)
	assert.Equal(t, int64(800), rows[0].SpentCents)

	assert.ErrorIs(t, td.Store.IncrementBoostMetrics(ctx, uuid.New(), BoostMetricDeltas{Impressions: 1}), ErrNotFound)
}

func TestGetBoostCampaignsByOwnerOrdering(t *testing.T) {
	td := SetupTestDB(t)
	ctx := context.Background()

	ownerID := uuid.New()
	createTestCampaign(t, td.Store, ownerID)
	createTestCampaign(t, td.Store, ownerID)
	createTestCampaign(t, td.Store, uuid.New())

	campaigns, err := td.Store.GetBoostCampaignsByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.True(t, !campaigns[0].CreatedAt.Before(campaigns[1].CreatedAt))
}
