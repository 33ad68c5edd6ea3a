package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
// and stores the caller's Identity in the request context.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Token requerido",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Formato de autorización inválido",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Token inválido o expirado",
			})
			return
		}

		c.Set(identityKey, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		c.Next()
	}
}

// RequireAdmin allows only administrator identities through.
// It MUST be used after AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(RoleAdmin)
}

// RequireClient allows only client identities through.
// It MUST be used after AuthRequired.
func RequireClient() gin.HandlerFunc {
	return requireRole(RoleClient)
}

func requireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Token requerido",
			})
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "No autorizado",
			})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated identity stored by AuthRequired.
func GetIdentity(c *gin.Context) (Identity, bool) {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}
	return Identity{}, false
}
