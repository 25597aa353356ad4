package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateSuggestionParams represents parameters for creating a boost suggestion
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

const sqlCreateSuggestion = `
INSERT INTO boost_suggestions (owner_id, profile_id, name, asset_type, asset_id, platform, suggested_daily_budget_cents, suggested_duration_days)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, owner_id, profile_id, name, asset_type, asset_id, platform, suggested_daily_budget_cents, suggested_duration_days,
          status, boost_campaign_id, created_at, updated_at
`

// CreateSuggestion creates a new boost suggestion in pending state
func (s *Store) CreateSuggestion(ctx context.Context, params CreateSuggestionParams) (BoostSuggestion, error) {
	var suggestion BoostSuggestion
	err := s.db.GetContext(ctx, &suggestion, sqlCreateSuggestion,
		params.OwnerID,
		params.ProfileID,
		params.Name,
		params.AssetType,
		params.AssetID,
		params.Platform,
		params.SuggestedDailyBudgetCents,
		params.SuggestedDurationDays)
	if err != nil {
		s.logger.Error(ctx, "failed to create suggestion", err)
		return BoostSuggestion{}, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return suggestion, nil
}

const sqlGetSuggestionByID = `
SELECT id, owner_id, profile_id, name, asset_type, asset_id, platform, suggested_daily_budget_cents, suggested_duration_days,
       status, boost_campaign_id, created_at, updated_at
FROM boost_suggestions
WHERE id = $1
`

// GetSuggestionByID retrieves a suggestion by ID
func (s *Store) GetSuggestionByID(ctx context.Context, suggestionID uuid.UUID) (BoostSuggestion, error) {
	var suggestion BoostSuggestion
	err := s.db.GetContext(ctx, &suggestion, sqlGetSuggestionByID, suggestionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BoostSuggestion{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get suggestion by id", err)
		return BoostSuggestion{}, fmt.Errorf("failed to get suggestion by id: %w", err)
	}
	return suggestion, nil
}

const sqlGetSuggestionsByOwner = `
SELECT id, owner_id, profile_id, name, asset_type, asset_id, platform, suggested_daily_budget_cents, suggested_duration_days,
       status, boost_campaign_id, created_at, updated_at
FROM boost_suggestions
WHERE owner_id = $1
ORDER BY created_at DESC
`

// GetSuggestionsByOwner retrieves all suggestions for an owner, newest first
func (s *Store) GetSuggestionsByOwner(ctx context.Context, ownerID uuid.UUID) ([]BoostSuggestion, error) {
	var suggestions []BoostSuggestion
	err := s.db.SelectContext(ctx, &suggestions, sqlGetSuggestionsByOwner, ownerID)
	if err != nil {
		s.logger.Error(ctx, "failed to get suggestions by owner", err)
		return nil, fmt.Errorf("failed to get suggestions by owner: %w", err)
	}
	return suggestions, nil
}

const sqlResolveSuggestion = `
UPDATE boost_suggestions
SET status = $2, boost_campaign_id = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = 'pending'
RETURNING id, owner_id, profile_id, name, asset_type, asset_id, platform, suggested_daily_budget_cents, suggested_duration_days,
          status, boost_campaign_id, created_at, updated_at
`

// ResolveSuggestion flips a pending suggestion to approved or dismissed. The
// status = 'pending' guard keeps a suggestion from being resolved twice.
func (s *Store) ResolveSuggestion(ctx context.Context, suggestionID uuid.UUID, status string, boostCampaignID *uuid.UUID) (BoostSuggestion, error) {
	var suggestion BoostSuggestion
	err := s.db.GetContext(ctx, &suggestion, sqlResolveSuggestion, suggestionID, status, boostCampaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BoostSuggestion{}, ErrOutcomeAlreadyApplied
		}
		s.logger.Error(ctx, "failed to resolve suggestion", err)
		return BoostSuggestion{}, fmt.Errorf("failed to resolve suggestion: %w", err)
	}
	return suggestion, nil
}
