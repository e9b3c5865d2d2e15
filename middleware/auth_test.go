package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func testRouter() *gin.Engine {
	router := utils.TestRouter()
	router.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		utils.Success(c, "ok", user)
	})
	router.GET("/admin", AuthMiddleware(secret), AdminMiddleware(), func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})
	return router
}

func get(t *testing.T, router http.Handler, path, auth string) utils.TestResponse {
	t.Helper()
	req := utils.TestRequest{Method: http.MethodGet, Path: path}
	if auth != "" {
		req.Headers = map[string]string{"Authorization": auth}
	}
	return utils.MakeTestRequest(t, router, req)
}

func TestAuthMiddleware(t *testing.T) {
	router := testRouter()
	verified := models.User{ID: "u1", Email: "u1@example.com", EmailVerified: true}

	expired, err := utils.GenerateToken(verified, secret, -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateToken(verified, "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		auth    string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, utils.ErrUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized, utils.ErrUnauthorized},
		{"garbage", "Bearer abc.def", http.StatusUnauthorized, utils.ErrInvalidToken},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, utils.ErrInvalidToken},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized, utils.ErrInvalidToken},
		{"wildcard subject", utils.GetTestToken(t, models.User{ID: store.AllOwners, EmailVerified: true, IsAdmin: true}, secret), http.StatusUnauthorized, utils.ErrInvalidToken},
		{"unverified", utils.GetTestToken(t, models.User{ID: "u2"}, secret), http.StatusForbidden, "Email address is not verified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, router, "/me", tt.auth)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, resp.Body["message"])
		})
	}

	resp := get(t, router, "/me", utils.GetTestToken(t, verified, secret))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", resp.Data()["id"])
	assert.Equal(t, "u1@example.com", resp.Data()["email"])
}

func TestAdminMiddleware(t *testing.T) {
	router := testRouter()

	customer := utils.GetTestToken(t, models.User{ID: "u1", EmailVerified: true}, secret)
	resp := get(t, router, "/admin", customer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, utils.ErrForbidden, resp.Body["message"])

	admin := utils.GetTestToken(t, models.User{ID: "a1", EmailVerified: true, IsAdmin: true}, secret)
	utils.AssertResponse(t, get(t, router, "/admin", admin), http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "ok",
	})
}

func TestAdminMiddlewareWithoutAuth(t *testing.T) {
	router := utils.TestRouter()
	router.GET("/admin", AdminMiddleware(), func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})
	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/admin", "").StatusCode)
}
