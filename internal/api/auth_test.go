package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/milkantri/inventory-service/internal/models"
)

func loginRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/seed-admin", h.SeedAdmin)
	return router
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	hash := hashPassword(t, "secret123")
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("dist@example.com").
		WillReturnRows(userRow("d1", "Dist", "dist@example.com", hash, models.RoleDistributor, true))

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		models.LoginRequest{Email: "Dist@Example.com", Password: "secret123"})
	requireStatus(t, w, http.StatusOK)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "d1", resp.User.ID)
	require.NotContains(t, w.Body.String(), hash)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	hash := hashPassword(t, "secret123")
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("dist@example.com").
		WillReturnRows(userRow("d1", "Dist", "dist@example.com", hash, models.RoleDistributor, true))

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		models.LoginRequest{Email: "dist@example.com", Password: "wrong"})
	requireStatus(t, w, http.StatusUnauthorized)
	require.Equal(t, "Invalid email or password", decodeError(t, w).Message)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	requireStatus(t, w, http.StatusUnauthorized)
	require.Equal(t, "Invalid email or password", decodeError(t, w).Message)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	hash := hashPassword(t, "secret123")
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("dist@example.com").
		WillReturnRows(userRow("d1", "Dist", "dist@example.com", hash, models.RoleDistributor, false))

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		models.LoginRequest{Email: "dist@example.com", Password: "secret123"})
	requireStatus(t, w, http.StatusForbidden)
	require.Contains(t, decodeError(t, w).Message, "deactivated")
}

func TestLogin_MissingFields(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"email": "dist@example.com"})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestSeedAdmin_RefusesWhenAdminExists(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE role = 'admin'\)`).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/seed-admin", "", nil)
	requireStatus(t, w, http.StatusBadRequest)
	require.Equal(t, "Admin user already exists", decodeError(t, w).Message)
}

func TestSeedAdmin_CreatesFirstAdmin(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	router := loginRouter(h)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE role = 'admin'\)`).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "Admin", "admin@example.com", pgxmock.AnyArg(), "admin", pgxmock.AnyArg()).
		WillReturnRows(userRow("u1", "Admin", "admin@example.com", "hash", models.RoleAdmin, true))

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/seed-admin", "", nil)
	requireStatus(t, w, http.StatusCreated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdmin_UnconfiguredServer(t *testing.T) {
	h, mock := newTestHandler(t)
	defer mock.Close()
	h.Cfg.AdminPassword = ""
	router := loginRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/seed-admin", "", nil)
	requireStatus(t, w, http.StatusInternalServerError)
}
