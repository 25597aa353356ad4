package processor

import (
	"context"
	"errors"
	"fmt"

	boostProcessor "boost-server/internal/money/boost/processor"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrSuggestionResolved = errors.New("suggestion has already been resolved")
	ErrUnauthorized       = errors.New("unauthorized access to suggestion")
)

// SuggestionStore defines the database operations required by SuggestionProcessor
type SuggestionStore interface {
	CreateSuggestion(ctx context.Context, params store.CreateSuggestionParams) (store.BoostSuggestion, error)
	GetSuggestionByID(ctx context.Context, suggestionID uuid.UUID) (store.BoostSuggestion, error)
	GetSuggestionsByOwner(ctx context.Context, ownerID uuid.UUID) ([]store.BoostSuggestion, error)
	ResolveSuggestion(ctx context.Context, suggestionID uuid.UUID, status string, boostCampaignID *uuid.UUID) (store.BoostSuggestion, error)
}

// BoostCreator is the single entry point suggestions use to originate a
// campaign, so an approved suggestion goes through exactly the same
// validation and budget math as a directly created boost.
type BoostCreator interface {
	CreateBoostCampaign(ctx context.Context, params boostProcessor.CreateBoostParams) (store.BoostCampaign, error)
}

// SuggestionProcessor manages promotion proposals. A suggestion holds a
// recommended budget and duration; approving it creates a boost campaign
// awaiting payment, dismissing it closes the proposal.
type SuggestionProcessor struct {
	store  SuggestionStore
	boosts BoostCreator
	logger *observability.Logger
}

func New(suggestionStore SuggestionStore, boosts BoostCreator, logger *observability.Logger) SuggestionProcessor {
	return SuggestionProcessor{
		store:  suggestionStore,
		boosts: boosts,
		logger: logger,
	}
}

// CreateSuggestionParams are the fields for a new promotion proposal.
type CreateSuggestionParams struct {
	OwnerID                   uuid.UUID
	ProfileID                 uuid.UUID
	Name                      string
	AssetType                 string
	AssetID                   uuid.UUID
	Platform                  string
	SuggestedDailyBudgetCents int64
	SuggestedDurationDays     int
}

// CreateSuggestion records a promotion proposal for the owner to act on.
func (p SuggestionProcessor) CreateSuggestion(ctx context.Context, params CreateSuggestionParams) (store.BoostSuggestion, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "owner_id", Value: params.OwnerID.String()})

	if params.SuggestedDailyBudgetCents <= 0 {
		return store.BoostSuggestion{}, boostProcessor.ErrInvalidBudget
	}
	if params.SuggestedDurationDays <= 0 {
		return store.BoostSuggestion{}, boostProcessor.ErrInvalidDuration
	}

	suggestion, err := p.store.CreateSuggestion(ctx, store.CreateSuggestionParams{
		OwnerID:                   params.OwnerID,
		ProfileID:                 params.ProfileID,
		Name:                      params.Name,
		AssetType:                 params.AssetType,
		AssetID:                   params.AssetID,
		Platform:                  params.Platform,
		SuggestedDailyBudgetCents: params.SuggestedDailyBudgetCents,
		SuggestedDurationDays:     params.SuggestedDurationDays,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create suggestion", err)
		return store.BoostSuggestion{}, fmt.Errorf("failed to create suggestion: %w", err)
	}

	p.logger.Info(ctx, "boost suggestion created")
	return suggestion, nil
}

// ListSuggestions returns the owner's suggestions, newest first.
func (p SuggestionProcessor) ListSuggestions(ctx context.Context, ownerID uuid.UUID) ([]store.BoostSuggestion, error) {
	suggestions, err := p.store.GetSuggestionsByOwner(ctx, ownerID)
	if err != nil {
		p.logger.Error(ctx, "failed to list suggestions", err)
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

// ApproveSuggestion turns a pending suggestion into a boost campaign awaiting
// payment. The owner may override the suggested budget or duration; zero
// values keep the suggestion's numbers.
func (p SuggestionProcessor) ApproveSuggestion(ctx context.Context, ownerID, suggestionID uuid.UUID, dailyBudgetCents int64, durationDays int) (store.BoostCampaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "suggestion_id", Value: suggestionID.String()})

	suggestion, err := p.getOwnedSuggestion(ctx, ownerID, suggestionID)
	if err != nil {
		return store.BoostCampaign{}, err
	}
	if suggestion.Status != store.SuggestionStatusPending {
		return store.BoostCampaign{}, ErrSuggestionResolved
	}

	if dailyBudgetCents == 0 {
		dailyBudgetCents = suggestion.SuggestedDailyBudgetCents
	}
	if durationDays == 0 {
		durationDays = suggestion.SuggestedDurationDays
	}

	campaign, err := p.boosts.CreateBoostCampaign(ctx, boostProcessor.CreateBoostParams{
		OwnerID:          suggestion.OwnerID,
		ProfileID:        suggestion.ProfileID,
		Name:             suggestion.Name,
		AssetType:        suggestion.AssetType,
		AssetID:          suggestion.AssetID,
		Platform:         suggestion.Platform,
		DailyBudgetCents: dailyBudgetCents,
		DurationDays:     durationDays,
	})
	if err != nil {
		return store.BoostCampaign{}, err
	}

	if _, err := p.store.ResolveSuggestion(ctx, suggestionID, store.SuggestionStatusApproved, &campaign.ID); err != nil {
		if errors.Is(err, store.ErrOutcomeAlreadyApplied) {
			// Lost a race with another resolution; the campaign created above
			// stays pending_payment and unpaid, so nothing has been charged.
			p.logger.Warn(ctx, "suggestion resolved concurrently, approval abandoned")
			return store.BoostCampaign{}, ErrSuggestionResolved
		}
		p.logger.Error(ctx, "failed to resolve suggestion", err)
		return store.BoostCampaign{}, fmt.Errorf("failed to resolve suggestion: %w", err)
	}

	p.logger.Info(ctx, "suggestion approved")
	return campaign, nil
}

// DismissSuggestion closes a pending suggestion without creating a campaign.
func (p SuggestionProcessor) DismissSuggestion(ctx context.Context, ownerID, suggestionID uuid.UUID) (store.BoostSuggestion, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "suggestion_id", Value: suggestionID.String()})

	suggestion, err := p.getOwnedSuggestion(ctx, ownerID, suggestionID)
	if err != nil {
		return store.BoostSuggestion{}, err
	}
	if suggestion.Status != store.SuggestionStatusPending {
		return store.BoostSuggestion{}, ErrSuggestionResolved
	}

	resolved, err := p.store.ResolveSuggestion(ctx, suggestionID, store.SuggestionStatusDismissed, nil)
	if err != nil {
		if errors.Is(err, store.ErrOutcomeAlreadyApplied) {
			return store.BoostSuggestion{}, ErrSuggestionResolved
		}
		p.logger.Error(ctx, "failed to dismiss suggestion", err)
		return store.BoostSuggestion{}, fmt.Errorf("failed to dismiss suggestion: %w", err)
	}

	p.logger.Info(ctx, "suggestion dismissed")
	return resolved, nil
}

func (p SuggestionProcessor) getOwnedSuggestion(ctx context.Context, ownerID, suggestionID uuid.UUID) (store.BoostSuggestion, error) {
	suggestion, err := p.store.GetSuggestionByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.BoostSuggestion{}, ErrSuggestionNotFound
		}
		return store.BoostSuggestion{}, fmt.Errorf("failed to get suggestion: %w", err)
	}
	if suggestion.OwnerID != ownerID {
		return store.BoostSuggestion{}, ErrUnauthorized
	}
	return suggestion, nil
}
