package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/milkantri/inventory-service/internal/models"
)

func protectedRouter(secret string) *gin.Engine {
	router := gin.New()
	authed := router.Group("/", AuthMiddleware(secret))
	authed.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": currentUserID(c),
			"role":    currentRole(c),
		})
	})
	authed.GET("/admin-only", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	authed.GET("/distributor-only", DistributorMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter("test-secret")
	w := get(router, "/whoami", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := protectedRouter("test-secret")
	w := get(router, "/whoami", "Token abc")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidSignature(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := protectedRouter("other-secret")

	token := tokenFor(t, h, "u1", models.RoleAdmin)
	w := get(router, "/whoami", "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "u1",
		"role":    "admin",
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	router := protectedRouter("test-secret")
	w := get(router, "/whoami", "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExposesClaims(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := protectedRouter("test-secret")

	token := tokenFor(t, h, "d1", models.RoleDistributor)
	w := get(router, "/whoami", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":"d1"`)
	require.Contains(t, w.Body.String(), `"role":"distributor"`)
}

func TestAdminMiddleware_RejectsDistributor(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := protectedRouter("test-secret")

	token := tokenFor(t, h, "d1", models.RoleDistributor)
	w := get(router, "/admin-only", "Bearer "+token)
	require.Equal(t, http.StatusForbidden, w.Code)

	token = tokenFor(t, h, "u1", models.RoleAdmin)
	w = get(router, "/admin-only", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDistributorMiddleware_RejectsAdmin(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := protectedRouter("test-secret")

	token := tokenFor(t, h, "u1", models.RoleAdmin)
	w := get(router, "/distributor-only", "Bearer "+token)
	require.Equal(t, http.StatusForbidden, w.Code)
}
