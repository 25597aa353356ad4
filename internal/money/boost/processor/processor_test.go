package processor

import (
	"context"
	"testing"

	"boost-server/internal/clients/assets"
	"boost-server/internal/clients/stripecheckout"
	"boost-server/internal/email"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoostStore struct {
	campaigns  map[uuid.UUID]store.BoostCampaign
	applyCalls int

	createErr     error
	setSessionErr error
	applyErr      error
}

func newFakeBoostStore() *fakeBoostStore {
	return &fakeBoostStore{campaigns: make(map[uuid.UUID]store.BoostCampaign)}
}

func (f *fakeBoostStore) CreateBoostCampaign(_ context.Context, params store.CreateBoostCampaignParams) (store.BoostCampaign, error) {
	if f.createErr != nil {
		return store.BoostCampaign{}, f.createErr
	}
	campaign := store.BoostCampaign{
		ID:               uuid.New(),
		OwnerID:          params.OwnerID,
		ProfileID:        params.ProfileID,
		Name:             params.Name,
		AssetType:        params.AssetType,
		AssetID:          params.AssetID,
		Platform:         params.Platform,
		DailyBudgetCents: params.DailyBudgetCents,
		DurationDays:     params.DurationDays,
		TotalBudgetCents: params.TotalBudgetCents,
		Status:           store.BoostStatusPendingPayment,
		PaymentStatus:    store.PaymentStatusPending,
	}
	f.campaigns[campaign.ID] = campaign
	return campaign, nil
}

func (f *fakeBoostStore) GetBoostCampaignByID(_ context.Context, campaignID uuid.UUID) (store.BoostCampaign, error) {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return store.BoostCampaign{}, store.ErrNotFound
	}
	return campaign, nil
}

func (f *fakeBoostStore) GetBoostCampaignByCheckoutSessionID(_ context.Context, sessionID string) (store.BoostCampaign, error) {
	for _, campaign := range f.campaigns {
		if campaign.CheckoutSessionID != nil && *campaign.CheckoutSessionID == sessionID {
			return campaign, nil
		}
	}
	return store.BoostCampaign{}, store.ErrNotFound
}

func (f *fakeBoostStore) SetBoostCampaignCheckoutSession(_ context.Context, campaignID uuid.UUID, sessionID string) error {
	if f.setSessionErr != nil {
		return f.setSessionErr
	}
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return store.ErrNotFound
	}
	campaign.CheckoutSessionID = &sessionID
	f.campaigns[campaignID] = campaign
	return nil
}

func (f *fakeBoostStore) ApplyBoostPaymentOutcome(_ context.Context, campaignID uuid.UUID, params store.ApplyBoostOutcomeParams) (store.BoostCampaign, error) {
	f.applyCalls++
	if f.applyErr != nil {
		return store.BoostCampaign{}, f.applyErr
	}
	campaign, ok := f.campaigns[campaignID]
	if !ok || campaign.PaymentStatus != store.PaymentStatusPending {
		return store.BoostCampaign{}, store.ErrOutcomeAlreadyApplied
	}
	campaign.Status = params.Status
	campaign.PaymentStatus = params.PaymentStatus
	campaign.PaymentReference = params.PaymentReference
	campaign.PaidAt = params.PaidAt
	campaign.StartDate = params.StartDate
	campaign.EndDate = params.EndDate
	f.campaigns[campaignID] = campaign
	return campaign, nil
}

func (f *fakeBoostStore) IncrementBoostMetrics(_ context.Context, campaignID uuid.UUID, deltas store.BoostMetricDeltas) error {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return store.ErrNotFound
	}
	campaign.SpentCents += deltas.SpentCents
	campaign.Impressions += deltas.Impressions
	campaign.Clicks += deltas.Clicks
	campaign.Reach += deltas.Reach
	campaign.Conversions += deltas.Conversions
	f.campaigns[campaignID] = campaign
	return nil
}

type fakeGateway struct {
	nextSession stripecheckout.Session
	createErr   error

	created []stripecheckout.CreateSessionParams
	expired []string
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, params stripecheckout.CreateSessionParams) (stripecheckout.Session, error) {
	if f.createErr != nil {
		return stripecheckout.Session{}, f.createErr
	}
	f.created = append(f.created, params)
	return f.nextSession, nil
}

func (f *fakeGateway) ExpireCheckoutSession(_ context.Context, sessionID string) error {
	f.expired = append(f.expired, sessionID)
	return nil
}

type fakePreviewer struct {
	preview assets.Preview
	ok      bool
}

func (f *fakePreviewer) Preview(_ context.Context, _ string, _ uuid.UUID) (assets.Preview, bool) {
	return f.preview, f.ok
}

type fakeEmailer struct {
	receipts []string
	failures []string
}

func (f *fakeEmailer) SendBoostReceipt(_ context.Context, to string, _ email.TemplateData) error {
	f.receipts = append(f.receipts, to)
	return nil
}

func (f *fakeEmailer) SendBoostPaymentFailed(_ context.Context, to string, _ email.TemplateData) error {
	f.failures = append(f.failures, to)
	return nil
}

type processorFixture struct {
	processor BoostProcessor
	store     *fakeBoostStore
	gateway   *fakeGateway
	emailer   *fakeEmailer
}

func newProcessorFixture() processorFixture {
	boostStore := newFakeBoostStore()
	gateway := &fakeGateway{nextSession: stripecheckout.Session{ID: "cs_test_1", RedirectURL: "https://checkout.example.com/cs_test_1"}}
	emailer := &fakeEmailer{}
	p := New(boostStore, gateway, &fakePreviewer{}, emailer, "https://app.example.com", observability.NewLogger())
	return processorFixture{processor: p, store: boostStore, gateway: gateway, emailer: emailer}
}

func validCreateParams(ownerID uuid.UUID) CreateBoostParams {
	return CreateBoostParams{
		OwnerID:          ownerID,
		ProfileID:        uuid.New(),
		Name:             "Summer clip push",
		AssetType:        store.AssetTypeClip,
		AssetID:          uuid.New(),
		Platform:         "instagram",
		DailyBudgetCents: 1000,
		DurationDays:     7,
	}
}

func TestCreateBoostCampaignComputesTotal(t *testing.T) {
	f := newProcessorFixture()
	ownerID := uuid.New()

	campaign, err := f.processor.CreateBoostCampaign(context.Background(), validCreateParams(ownerID))
	require.NoError(t, err)

	assert.Equal(t, int64(7000), campaign.TotalBudgetCents)
	assert.Equal(t, store.BoostStatusPendingPayment, campaign.Status)
	assert.Equal(t, store.PaymentStatusPending, campaign.PaymentStatus)
	assert.Nil(t, campaign.StartDate)
	assert.Nil(t, campaign.EndDate)
}

func TestCreateBoostCampaignValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateBoostParams)
		wantErr error
	}{
		{
			name:    "zero daily budget",
			mutate:  func(p *CreateBoostParams) { p.DailyBudgetCents = 0 },
			wantErr: ErrInvalidBudget,
		},
		{
			name:    "negative daily budget",
			mutate:  func(p *CreateBoostParams) { p.DailyBudgetCents = -500 },
			wantErr: ErrInvalidBudget,
		},
		{
			name:    "zero duration",
			mutate:  func(p *CreateBoostParams) { p.DurationDays = 0 },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "unsupported asset type",
			mutate:  func(p *CreateBoostParams) { p.AssetType = "story" },
			wantErr: ErrInvalidAssetType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProcessorFixture()
			params := validCreateParams(uuid.New())
			tt.mutate(&params)

			_, err := f.processor.CreateBoostCampaign(context.Background(), params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.campaigns)
		})
	}
}

func TestGetBoostCampaignEnforcesOwnership(t *testing.T) {
	f := newProcessorFixture()
	ownerID := uuid.New()
	campaign, err := f.processor.CreateBoostCampaign(context.Background(), validCreateParams(ownerID))
	require.NoError(t, err)

	_, err = f.processor.GetBoostCampaign(context.Background(), uuid.New(), campaign.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := f.processor.GetBoostCampaign(context.Background(), ownerID, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, got.ID)
}

func TestGetBoostCampaignNotFound(t *testing.T) {
	f := newProcessorFixture()
	_, err := f.processor.GetBoostCampaign(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrBoostNotFound)
}

func TestIngestMetricsAccumulates(t *testing.T) {
	f := newProcessorFixture()
	ownerID := uuid.New()
	campaign, err := f.processor.CreateBoostCampaign(context.Background(), validCreateParams(ownerID))
	require.NoError(t, err)

	deltas := store.BoostMetricDeltas{SpentCents: 250, Impressions: 1000, Clicks: 12}
	require.NoError(t, f.processor.IngestMetrics(context.Background(), campaign.ID, deltas))
	require.NoError(t, f.processor.IngestMetrics(context.Background(), campaign.ID, deltas))

	got := f.store.campaigns[campaign.ID]
	assert.Equal(t, int64(500), got.SpentCents)
	assert.Equal(t, int64(2000), got.Impressions)
	assert.Equal(t, int64(24), got.Clicks)
}

func TestIngestMetricsUnknownBoost(t *testing.T) {
	f := newProcessorFixture()
	err := f.processor.IngestMetrics(context.Background(), uuid.New(), store.BoostMetricDeltas{Impressions: 1})
	assert.ErrorIs(t, err, ErrBoostNotFound)
}
