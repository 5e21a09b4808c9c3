package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/milkantri/inventory-service/internal/config"
	"github.com/milkantri/inventory-service/internal/db"
	"github.com/milkantri/inventory-service/internal/errs"
	"github.com/milkantri/inventory-service/internal/models"
)

// Handler holds the database connection and configuration and handles HTTP
// requests
type Handler struct {
	DB  *db.Database
	Cfg *config.Config
}

// NewHandler creates a new handler instance
func NewHandler(database *db.Database, cfg *config.Config) *Handler {
	return &Handler{
		DB:  database,
		Cfg: cfg,
	}
}

// requestContext returns a bounded context for a database round trip
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}

// Health endpoint for health checks (readiness)
func (h *Handler) Health(c *gin.Context) {
	// If DB is not initialized yet, report not ready without panicking
	if h.DB == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Database not initialized",
			Message: "Service starting up; DB unavailable",
		})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.DB.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Database connection failed",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "inventory-service",
		"timestamp": time.Now().UTC(),
	})
}

// respondError maps ledger errors to HTTP statuses per the error taxonomy.
// notFoundMessage names the entity for the 404 case.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	if _, ok := errs.IsInsufficientQuantity(err); ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Insufficient quantity",
			Message: err.Error(),
		})
		return
	}
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Not found",
			Message: notFoundMessage,
		})
	case errors.Is(err, errs.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation error",
			Message: "Email already exists",
		})
	case errors.Is(err, errs.ErrInvalidState):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid state",
			Message: "Operation not valid for the entity's current status",
		})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "You are not allowed to modify this resource",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Internal error",
			Message: err.Error(),
		})
	}
}
