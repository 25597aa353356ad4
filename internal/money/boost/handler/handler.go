package handler

import (
	"crypto/subtle"
	"net/http"

	"boost-server/internal/apierrors"
	"boost-server/internal/auth"
	"boost-server/internal/money/boost/processor"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor     processor.BoostProcessor
	webhookSecret string
	metricsSecret string
	logger        *observability.Logger
}

func New(boostProcessor processor.BoostProcessor, webhookSecret, metricsSecret string, logger *observability.Logger) Handler {
	return Handler{
		processor:     boostProcessor,
		webhookSecret: webhookSecret,
		metricsSecret: metricsSecret,
		logger:        logger,
	}
}

// CreateBoostRequest is the payload for creating a boost campaign. The total
// charge is never accepted from the client.
type CreateBoostRequest struct {
	ProfileID        uuid.UUID `json:"profile_id" binding:"required"`
	Name             string    `json:"name" binding:"required,max=120"`
	AssetType        string    `json:"asset_type" binding:"required,oneof=clip meme gif"`
	AssetID          uuid.UUID `json:"asset_id" binding:"required"`
	Platform         string    `json:"platform" binding:"required"`
	DailyBudgetCents int64     `json:"daily_budget_cents" binding:"required,gt=0"`
	DurationDays     int       `json:"duration_days" binding:"required,gt=0"`
}

func (h *Handler) HandleCreateBoost(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	var req CreateBoostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	campaign, err := h.processor.CreateBoostCampaign(ctx, processor.CreateBoostParams{
		OwnerID:          ownerID,
		ProfileID:        req.ProfileID,
		Name:             req.Name,
		AssetType:        req.AssetType,
		AssetID:          req.AssetID,
		Platform:         req.Platform,
		DailyBudgetCents: req.DailyBudgetCents,
		DurationDays:     req.DurationDays,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func (h *Handler) HandleGetBoost(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	boostID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "boost id must be a valid UUID"))
		return
	}

	campaign, err := h.processor.GetBoostCampaign(ctx, ownerID, boostID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// CheckoutRequest optionally overrides the post-checkout landing pages. The
// targets must live on the web app's origin; omitted fields use the default
// boost pages.
type CheckoutRequest struct {
	SuccessURL string `json:"success_url" binding:"omitempty,url"`
	CancelURL  string `json:"cancel_url" binding:"omitempty,url"`
}

func (h *Handler) HandleInitiateCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	boostID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "boost id must be a valid UUID"))
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.RespondWithValidationError(c, err)
			return
		}
	}

	session, err := h.processor.InitiateCheckout(ctx, ownerID, boostID, processor.CheckoutRedirects{
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *Handler) HandleVerifyCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "session_id is required"))
		return
	}

	verification, err := h.processor.VerifyCheckout(ctx, ownerID, sessionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, verification)
}

// MetricsRequest carries additive counter deltas from the delivery pipeline.
type MetricsRequest struct {
	SpentCents  int64 `json:"spent_cents" binding:"gte=0"`
	Impressions int64 `json:"impressions" binding:"gte=0"`
	Clicks      int64 `json:"clicks" binding:"gte=0"`
	Reach       int64 `json:"reach" binding:"gte=0"`
	Conversions int64 `json:"conversions" binding:"gte=0"`
}

// HandleIngestMetrics is called by the internal delivery pipeline, not by end
// users; it authenticates with a shared secret instead of a session token.
func (h *Handler) HandleIngestMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	secret := c.GetHeader("X-Internal-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.metricsSecret)) != 1 {
		apierrors.RespondWithError(c, apierrors.Forbidden("invalid internal secret"))
		return
	}

	boostID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "boost id must be a valid UUID"))
		return
	}

	var req MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	err = h.processor.IngestMetrics(ctx, boostID, store.BoostMetricDeltas{
		SpentCents:  req.SpentCents,
		Impressions: req.Impressions,
		Clicks:      req.Clicks,
		Reach:       req.Reach,
		Conversions: req.Conversions,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "accepted"})
}
