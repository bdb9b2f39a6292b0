package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bonaparte-uniformes/bonaparte-api/services"
)

const sesionKey = "sesion"

// RequireAuth validates the bearer token against the active session table
// and attaches the acting identity to the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}

		sesion, ok := services.GetSessionStore().Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}

		c.Set(sesionKey, sesion)
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sesion, ok := GetSesion(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		if !sesion.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Solo admin"})
			return
		}
		c.Next()
	}
}

// GetSesion extracts the acting identity from the Gin context
func GetSesion(c *gin.Context) (services.Sesion, bool) {
	value, exists := c.Get(sesionKey)
	if !exists {
		return services.Sesion{}, false
	}
	sesion, ok := value.(services.Sesion)
	return sesion, ok
}

func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
