package handler

import (
	"io"
	"net/http"

	"boost-server/internal/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"
)

// HandleGatewayWebhook receives payment gateway notifications. The gateway
// delivers at least once, so any 2xx here means "outcome recorded or already
// on record"; only a transient failure may return 5xx, which triggers
// redelivery.
func (h *Handler) HandleGatewayWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "failed to read request body"))
		return
	}

	signatureHeader := c.GetHeader("Stripe-Signature")
	if signatureHeader == "" {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "missing Stripe-Signature header"))
		return
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, h.webhookSecret)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid webhook signature"))
		return
	}

	if err := h.processor.HandleGatewayEvent(ctx, event); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
