package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/auth"
	"github.com/vaishnavisales/storefront/internal/session"
)

const ClaimsContextKey = "claims"

// AuthMiddleware authenticates requests using a session JWT. The token is only
// accepted while its jti is the user's current session, so logout, a newer
// sign-in or a password reset revokes it.
func AuthMiddleware(issuer *auth.Issuer, sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		claims, err := issuer.Parse(token, auth.TypeSession)
		if err != nil {
			logger.Debug("Rejected token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		active, err := sessions.Active(c.Request.Context(), claims.UserID(), claims.SessionID())
		if err != nil {
			logger.Error("Failed to load session", zap.String("user_id", claims.UserID()), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			c.Abort()
			return
		}
		if !active {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session ended, please sign in again"})
			c.Abort()
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// AdminMiddleware lets through the administrator while admin mode is on.
// It must run after AuthMiddleware.
func AdminMiddleware(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		on, err := sessions.IsAdminMode(c.Request.Context(), claims.UserID())
		if err != nil {
			logger.Error("Failed to read admin mode", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			c.Abort()
			return
		}
		if !on {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin mode is off"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaimsFromContext retrieves the token claims from the Gin context
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	claims, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}

	cl, ok := claims.(*auth.Claims)
	return cl, ok
}
