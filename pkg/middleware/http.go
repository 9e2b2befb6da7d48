package middleware

import (
	"net/http"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPAuth is the gin counterpart of AuthInterceptor.
func HTTPAuth(resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := Authenticate(c.Request.Context(), resolver, c.GetHeader(TokenHeader), c.FullPath())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func HTTPLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		responseTime := time.Since(startTime)
		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", responseTime).
			Str("user-agent", c.Request.UserAgent()).
			Msg("http request")
		telemetry(c.FullPath(), responseTime, httpStatusTag(status))
	}
}

func HTTPRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.FullPath()).Msg("Recovered in http handler")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

func httpStatusTag(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
