package gateway

import (
	"io"
	"net/http"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/prediction"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/callcontext"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxRequestBytes = 1 << 20

// RegisterRoutes mounts the HTTP endpoints. Identity is attached by the
// auth middleware installed on the router.
func (g *Gateway) RegisterRoutes(router gin.IRouter) {
	router.GET("/health/self", Health)
	router.POST("/api/v1/predict", g.PredictHTTP)
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "true")
}

func (g *Gateway) PredictHTTP(c *gin.Context) {
	ctx := c.Request.Context()
	cc, ok := callcontext.FromContext(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": PermissionDeniedMessage})
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}
	payload, err := prediction.DecodeJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts, err := g.options.OptionsFor(ctx, cc.TenantID)
	if err != nil {
		log.Error().Err(err).Str("client", cc.TenantID).Msg("Could not load client options")
		c.JSON(http.StatusInternalServerError, gin.H{"error": BackendErrorMessage})
		return
	}
	result, err := g.predictor.PredictJSON(ctx, cc.TenantID, payload, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": BackendErrorMessage})
		return
	}
	c.JSON(http.StatusOK, result)
}
