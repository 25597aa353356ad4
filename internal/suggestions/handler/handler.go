package handler

import (
	"net/http"

	"boost-server/internal/apierrors"
	"boost-server/internal/auth"
	"boost-server/internal/observability"
	"boost-server/internal/suggestions/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.SuggestionProcessor
	logger    *observability.Logger
}

func New(suggestionProcessor processor.SuggestionProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: suggestionProcessor,
		logger:    logger,
	}
}

// CreateSuggestionRequest is the payload for recording a promotion proposal.
type CreateSuggestionRequest struct {
	ProfileID                 uuid.UUID `json:"profile_id" binding:"required"`
	Name                      string    `json:"name" binding:"required,max=120"`
	AssetType                 string    `json:"asset_type" binding:"required,oneof=clip meme gif"`
	AssetID                   uuid.UUID `json:"asset_id" binding:"required"`
	Platform                  string    `json:"platform" binding:"required"`
	SuggestedDailyBudgetCents int64     `json:"suggested_daily_budget_cents" binding:"required,gt=0"`
	SuggestedDurationDays     int       `json:"suggested_duration_days" binding:"required,gt=0"`
}

func (h *Handler) HandleCreateSuggestion(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	var req CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	suggestion, err := h.processor.CreateSuggestion(ctx, processor.CreateSuggestionParams{
		OwnerID:                   ownerID,
		ProfileID:                 req.ProfileID,
		Name:                      req.Name,
		AssetType:                 req.AssetType,
		AssetID:                   req.AssetID,
		Platform:                  req.Platform,
		SuggestedDailyBudgetCents: req.SuggestedDailyBudgetCents,
		SuggestedDurationDays:     req.SuggestedDurationDays,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

func (h *Handler) HandleListSuggestions(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	suggestions, err := h.processor.ListSuggestions(ctx, ownerID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// ApproveSuggestionRequest optionally overrides the suggested numbers.
type ApproveSuggestionRequest struct {
	DailyBudgetCents int64 `json:"daily_budget_cents" binding:"omitempty,gt=0"`
	DurationDays     int   `json:"duration_days" binding:"omitempty,gt=0"`
}

func (h *Handler) HandleApproveSuggestion(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	suggestionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "suggestion id must be a valid UUID"))
		return
	}

	var req ApproveSuggestionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.RespondWithValidationError(c, err)
			return
		}
	}

	campaign, err := h.processor.ApproveSuggestion(ctx, ownerID, suggestionID, req.DailyBudgetCents, req.DurationDays)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func (h *Handler) HandleDismissSuggestion(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	suggestionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "suggestion id must be a valid UUID"))
		return
	}

	suggestion, err := h.processor.DismissSuggestion(ctx, ownerID, suggestionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
