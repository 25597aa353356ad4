package api

import (
	"net/http"

	analyticsHandler "boost-server/internal/analytics/handler"
	"boost-server/internal/auth"
	boostHandler "boost-server/internal/money/boost/handler"
	suggestionHandler "boost-server/internal/suggestions/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router            *gin.RouterGroup
	authenticator     auth.Authenticator
	boostHandler      boostHandler.Handler
	analyticsHandler  analyticsHandler.Handler
	suggestionHandler suggestionHandler.Handler
}

func New(
	router *gin.RouterGroup,
	authenticator auth.Authenticator,
	boostHandler boostHandler.Handler,
	analyticsHandler analyticsHandler.Handler,
	suggestionHandler suggestionHandler.Handler,
) API {
	return API{
		router:            router,
		authenticator:     authenticator,
		boostHandler:      boostHandler,
		analyticsHandler:  analyticsHandler,
		suggestionHandler: suggestionHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")

	// Gateway and internal callers authenticate by signature or shared
	// secret, not session tokens.
	apiGroup.POST("/webhooks/stripe", a.boostHandler.HandleGatewayWebhook)
	apiGroup.POST("/internal/boosts/:id/metrics", a.boostHandler.HandleIngestMetrics)
	apiGroup.GET("/internal/boosts", a.analyticsHandler.HandleAdminListBoosts)

	protectedGroup := apiGroup.Group("", a.authenticator.HandleJWTMiddleware)
	{
		protectedGroup.POST("/boosts", a.boostHandler.HandleCreateBoost)
		protectedGroup.GET("/boosts/:id", a.boostHandler.HandleGetBoost)
		protectedGroup.POST("/boosts/:id/checkout", a.boostHandler.HandleInitiateCheckout)
		protectedGroup.GET("/checkout/verify", a.boostHandler.HandleVerifyCheckout)

		protectedGroup.GET("/analytics/boosts", a.analyticsHandler.HandleGetBoostHistory)
		protectedGroup.GET("/analytics/assets", a.analyticsHandler.HandleGetAssetPerformance)

		protectedGroup.POST("/suggestions", a.suggestionHandler.HandleCreateSuggestion)
		protectedGroup.GET("/suggestions", a.suggestionHandler.HandleListSuggestions)
		protectedGroup.POST("/suggestions/:id/approve", a.suggestionHandler.HandleApproveSuggestion)
		protectedGroup.POST("/suggestions/:id/dismiss", a.suggestionHandler.HandleDismissSuggestion)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
