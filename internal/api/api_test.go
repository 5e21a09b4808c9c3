package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/milkantri/inventory-service/internal/config"
	"github.com/milkantri/inventory-service/internal/db"
	"github.com/milkantri/inventory-service/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) (*Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		AdminName:          "Admin",
		AdminEmail:         "admin@example.com",
		AdminPassword:      "admin-password",
	}
	return NewHandler(&db.Database{Pool: mock}, cfg), mock
}

func userRow(id, name, email, passwordHash string, role models.Role, isActive bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "phone_number", "is_active", "created_at", "updated_at"}).
		AddRow(id, name, email, passwordHash, string(role), nil, isActive, now, now)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func tokenFor(t *testing.T, h *Handler, userID string, role models.Role) string {
	t.Helper()
	token, _, err := h.generateJWTToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
