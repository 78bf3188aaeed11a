package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charityevents/utils"
)

// Authenticate guards the admin back-office. The Authorization header must
// carry a valid admin token; the admin id is stored in the request context
// for downstream handlers and per-admin limiters.
func Authenticate(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	adminID, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	c.Set("adminId", adminID)
	c.Next()
}
