package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/clean-connect/utils"
)

// RequireJSON menolak body non-JSON di endpoint JSON dengan 415.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		// Request tanpa body (mis. POST /seed dari curl) tidak perlu Content-Type
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(contentType, "application/json") {
			utils.RespondError(c, http.StatusUnsupportedMediaType, errors.New("Content-Type must be application/json"))
			c.Abort()
			return
		}

		c.Next()
	}
}
