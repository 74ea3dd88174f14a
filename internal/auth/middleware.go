package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/response"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			unauthorized(c, "invalid Authorization header format")
			return
		}

		claims, err := jwtManager.ParseAndValidate(strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		// Store operator info into Gin context for later handlers.
		c.Set(operatorIDKey, claims.OperatorID)
		c.Set(operatorNameKey, claims.Name)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Envelope{
		Success: false,
		Message: message,
	})
}
