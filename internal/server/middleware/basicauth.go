// file: internal/server/middleware/basicauth.go
// version: 1.1.0
// guid: 3e8c1a5d-9f4b-4d2e-8a7c-6b1f9d3e5a82

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfigueroa/stockroom/internal/config"
)

// BasicAuth returns a Gin middleware that enforces HTTP Basic Authentication
// when config.AppConfig.BasicAuthEnabled is true. Health and metrics
// endpoints are exempt. The configured password may be either plaintext or a
// bcrypt hash.
func BasicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AppConfig.BasicAuthEnabled {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		// Exempt health and metrics endpoints
		if path == "/api/health" || path == "/api/v1/health" || path == "/metrics" {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="Stockroom"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		expectedUser := config.AppConfig.BasicAuthUsername
		expectedPass := config.AppConfig.BasicAuthPassword

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(expectedUser)) == 1
		passMatch := passwordMatches(pass, expectedPass)

		if !userMatch || !passMatch {
			c.Header("WWW-Authenticate", `Basic realm="Stockroom"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}

// passwordMatches compares the presented password against the configured one,
// treating values with a bcrypt prefix as hashes.
func passwordMatches(presented, expected string) bool {
	if strings.HasPrefix(expected, "$2a$") || strings.HasPrefix(expected, "$2b$") || strings.HasPrefix(expected, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(expected), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
