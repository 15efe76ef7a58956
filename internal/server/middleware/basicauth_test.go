// file: internal/server/middleware/basicauth_test.go
// version: 1.1.0
// guid: 9c5e2b8f-4d7a-4c1e-8b3f-7a2d9e5c4b86

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfigueroa/stockroom/internal/config"
)

func setupBasicAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BasicAuth())
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/api/v1/shops", func(c *gin.Context) {
		c.String(http.StatusOK, "shops")
	})
	return r
}

func getWithAuth(r *gin.Engine, path, user, pass string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestBasicAuth_Disabled(t *testing.T) {
	config.AppConfig.BasicAuthEnabled = false

	r := setupBasicAuthRouter()
	w := getWithAuth(r, "/api/v1/shops", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuth_NoCredentials(t *testing.T) {
	config.AppConfig.BasicAuthEnabled = true
	config.AppConfig.BasicAuthUsername = "admin"
	config.AppConfig.BasicAuthPassword = "secret"
	t.Cleanup(func() { config.AppConfig.BasicAuthEnabled = false })

	r := setupBasicAuthRouter()
	w := getWithAuth(r, "/api/v1/shops", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
}

func TestBasicAuth_HealthExempt(t *testing.T) {
	config.AppConfig.BasicAuthEnabled = true
	config.AppConfig.BasicAuthUsername = "admin"
	config.AppConfig.BasicAuthPassword = "secret"
	t.Cleanup(func() { config.AppConfig.BasicAuthEnabled = false })

	r := setupBasicAuthRouter()
	w := getWithAuth(r, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuth_PlaintextPassword(t *testing.T) {
	config.AppConfig.BasicAuthEnabled = true
	config.AppConfig.BasicAuthUsername = "admin"
	config.AppConfig.BasicAuthPassword = "secret"
	t.Cleanup(func() { config.AppConfig.BasicAuthEnabled = false })

	r := setupBasicAuthRouter()

	assert.Equal(t, http.StatusOK, getWithAuth(r, "/api/v1/shops", "admin", "secret").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "/api/v1/shops", "admin", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "/api/v1/shops", "nobody", "secret").Code)
}

func TestBasicAuth_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	config.AppConfig.BasicAuthEnabled = true
	config.AppConfig.BasicAuthUsername = "admin"
	config.AppConfig.BasicAuthPassword = string(hash)
	t.Cleanup(func() { config.AppConfig.BasicAuthEnabled = false })

	r := setupBasicAuthRouter()

	assert.Equal(t, http.StatusOK, getWithAuth(r, "/api/v1/shops", "admin", "secret").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "/api/v1/shops", "admin", "wrong").Code)
}
