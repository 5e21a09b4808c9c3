package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/milkantri/inventory-service/internal/errs"
	"github.com/milkantri/inventory-service/internal/logging"
	"github.com/milkantri/inventory-service/internal/models"
)

// generateJWTToken creates a signed session token for the user
func (h *Handler) generateJWTToken(userID, email string, role models.Role) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(h.Cfg.JWTExpirationHours) * time.Hour)

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.Cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Login authenticates a user by email and password and issues a session token.
// Unknown emails and wrong passwords are indistinguishable to the caller;
// deactivated accounts are rejected outright.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Email and password are required",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.DB.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid email or password",
			})
			return
		}
		respondError(c, err, "")
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "Your account has been deactivated. Please contact admin.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid email or password",
		})
		return
	}

	token, expiresAt, err := h.generateJWTToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to generate token",
			Message: err.Error(),
		})
		return
	}

	logging.LogKV("info", "login", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	c.JSON(http.StatusOK, models.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	})
}

// SeedAdmin bootstraps the first admin account from configuration. It refuses
// to run once any admin exists.
func (h *Handler) SeedAdmin(c *gin.Context) {
	if h.Cfg.AdminEmail == "" || h.Cfg.AdminPassword == "" {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Server not configured",
			Message: "ADMIN_EMAIL and ADMIN_PASSWORD must be set to seed an admin",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	exists, err := h.DB.AdminExists(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation error",
			Message: "Admin user already exists",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(h.Cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to hash password",
			Message: err.Error(),
		})
		return
	}

	admin, err := h.DB.CreateUser(ctx, h.Cfg.AdminName, h.Cfg.AdminEmail, string(hash), models.RoleAdmin, nil)
	if err != nil {
		respondError(c, err, "")
		return
	}

	logging.LogKV("info", "admin seeded", map[string]interface{}{"user_id": admin.ID})

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Admin user created successfully",
		Data:    admin,
	})
}
