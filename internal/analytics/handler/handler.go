package handler

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"boost-server/internal/analytics/processor"
	"boost-server/internal/apierrors"
	"boost-server/internal/auth"
	"boost-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor   processor.AnalyticsProcessor
	adminSecret string
	logger      *observability.Logger
}

func New(analyticsProcessor processor.AnalyticsProcessor, adminSecret string, logger *observability.Logger) Handler {
	return Handler{
		processor:   analyticsProcessor,
		adminSecret: adminSecret,
		logger:      logger,
	}
}

// HandleGetBoostHistory returns the owner's boost history, newest first.
func (h *Handler) HandleGetBoostHistory(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	history, err := h.processor.GetBoostHistory(ctx, ownerID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// HandleGetAssetPerformance returns the owner's per-asset performance rollup.
func (h *Handler) HandleGetAssetPerformance(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := auth.AccountID(c)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("missing account"))
		return
	}

	performance, err := h.processor.GetAssetPerformance(ctx, ownerID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, performance)
}

// HandleAdminListBoosts pages through campaigns across all owners. Internal
// operator tooling authenticates with the shared secret, not a session token.
func (h *Handler) HandleAdminListBoosts(c *gin.Context) {
	ctx := c.Request.Context()

	secret := c.GetHeader("X-Internal-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.adminSecret)) != 1 {
		apierrors.RespondWithError(c, apierrors.Forbidden("invalid internal secret"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.processor.AdminListBoosts(ctx, limit, offset)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
