package rbac

import (
	"net/http"

	"storefront-app/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireStore enforces the tenant invariant: the session must name a store.
// Run it after auth.RequireSession.
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, err := auth.StoreHash(c.Request.Context())
		if err != nil || hash == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}

// RequireAnyRole allows access if the session role is one of allowed.
// Sessions without a role are unauthenticated; a known but unlisted role is forbidden.
func RequireAnyRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, err := auth.ClaimsFromContext(c.Request.Context())
		if err != nil || claims.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if _, ok := allowedSet[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
