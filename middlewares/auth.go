package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rengganislabs/ledger_backend/utils"
)

// AuthMiddleware guards the report API with a bearer JWT minted by the
// /auth/token exchange. Claims are copied into the request context for
// downstream logging.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		parsed, err := utils.JwtValidate(token)
		if err != nil || !parsed.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		if claims, ok := parsed.Claims.(*utils.JwtCustomClaim); ok {
			ctx = utils.SetClientIdInContext(ctx, claims.ClientId)
			ctx = utils.SetRoleInContext(ctx, claims.Role)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
