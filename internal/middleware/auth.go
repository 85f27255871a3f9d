package middleware

import (
	"net/http"
	"strings"

	"endowal/config"
	"endowal/internal/auth"
	"endowal/internal/authz"
	"endowal/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and confirms the subject is still an
// active user. Sets the authz.Actor in the context.
func AuthRequired(cfg *config.JWTConfig, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		// Ownership can change mid-session; the subject is looked up fresh so
		// a deleted or deactivated user is rejected even with a live token.
		u, err := userRepo.GetByID(claims.UserID)
		if err != nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}
		c.Set("actor", authz.Actor{ID: u.ID, Role: u.Role})
		c.Next()
	}
}

// RequireRole gates a route to the listed roles. Runs after AuthRequired.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("actor")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		actor := v.(authz.Actor)
		for _, a := range allowed {
			if actor.Role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// GetActor returns the authenticated actor (must be used after AuthRequired).
func GetActor(c *gin.Context) authz.Actor {
	v, _ := c.Get("actor")
	if v == nil {
		return authz.Actor{}
	}
	return v.(authz.Actor)
}
