package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/interfaces/http/response"
)

// APIKeyHeader admin key header
const APIKeyHeader = "X-API-Key"

// RequireAPIKey rejects requests without the admin key
// An empty expected key disables the check.
func RequireAPIKey(expected string) gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "apikey")
	if expected == "" {
		logger.Warn("Admin API key not configured, endpoints are unauthenticated")
		return func(c *gin.Context) { c.Next() }
	}

	want := []byte(expected)
	return func(c *gin.Context) {
		got := c.GetHeader(APIKeyHeader)
		if got == "" {
			response.Abort(c, http.StatusUnauthorized, 401, "missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			log.FromContext(c.Request.Context(), logger).Warn("Invalid API key",
				"path", c.FullPath(),
				"key", log.MaskSecret(got),
			)
			response.Abort(c, http.StatusForbidden, 403, "invalid API key")
			return
		}
		c.Next()
	}
}
