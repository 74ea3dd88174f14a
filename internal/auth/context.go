package auth

import "github.com/gin-gonic/gin"

const (
	operatorIDKey   = "operatorID"
	operatorNameKey = "operatorName"
)

// GetOperatorID returns the authenticated operator's ID or empty string.
func GetOperatorID(c *gin.Context) string {
	return getString(c, operatorIDKey)
}

// GetOperatorName returns the authenticated operator's display name or empty string.
func GetOperatorName(c *gin.Context) string {
	return getString(c, operatorNameKey)
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
