package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const tenantIDKey = contextKey("tenantID")
const actorIDKey = contextKey("actorID")

// TenantHeader is the trusted header carrying the tenant identifier.
// Authentication and tenant management live at the edge; by the time a
// request reaches this service the headers are trusted.
const TenantHeader = "X-Tenant-ID"

// ActorHeader carries the acting user's identifier for audit fields.
const ActorHeader = "X-Actor-ID"

// TenantMiddleware resolves the tenant and actor from trusted headers and
// stores them in the request context. Requests without a tenant are rejected.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			logger.Warn("Tenant header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": TenantHeader + " header required"})
			return
		}

		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			actorID = "anonymous"
		}

		enrichedLogger := logger.With(slog.String("tenant_id", tenantID))

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = context.WithValue(ctx, actorIDKey, actorID)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant ID from the Gin context.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantID, ok := c.Request.Context().Value(tenantIDKey).(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}

// GetActorIDFromContext retrieves the acting user's ID from the Gin context.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorID, ok := c.Request.Context().Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
