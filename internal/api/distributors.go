package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/milkantri/inventory-service/internal/models"
)

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// GetDistributors returns all distributor accounts
func (h *Handler) GetDistributors(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	distributors, err := h.DB.ListDistributors(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributors": distributors})
}

// GetDistributor returns a single distributor account
func (h *Handler) GetDistributor(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	distributor, err := h.DB.GetDistributorByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Distributor not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributor": distributor})
}

// CreateDistributor creates a distributor account
func (h *Handler) CreateDistributor(c *gin.Context) {
	var req models.CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Name, email, and password are required",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to hash password",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	distributor, err := h.DB.CreateUser(ctx, req.Name, req.Email, string(hash),
		models.RoleDistributor, optionalString(req.PhoneNumber))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Distributor created successfully",
		Data:    distributor,
	})
}

// UpdateDistributor edits a distributor account. The password is only
// rehashed when one is provided.
func (h *Handler) UpdateDistributor(c *gin.Context) {
	var req models.UpdateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Name and email are required",
		})
		return
	}

	passwordHash := ""
	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to hash password",
				Message: err.Error(),
			})
			return
		}
		passwordHash = string(hash)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	distributor, err := h.DB.UpdateDistributor(ctx, c.Param("id"), req.Name, req.Email,
		optionalString(req.PhoneNumber), isActive, passwordHash)
	if err != nil {
		respondError(c, err, "Distributor not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Distributor updated successfully",
		Data:    distributor,
	})
}

// DeleteDistributor removes a distributor account
func (h *Handler) DeleteDistributor(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.DB.DeleteDistributor(ctx, c.Param("id")); err != nil {
		respondError(c, err, "Distributor not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Distributor deleted successfully",
	})
}
