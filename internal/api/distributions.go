package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milkantri/inventory-service/internal/logging"
	"github.com/milkantri/inventory-service/internal/models"
)

// GetDistributions lists distributions: all of them for admins, the caller's
// own for distributors
func (h *Handler) GetDistributions(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		distributions []models.DistributionResponse
		err           error
	)
	if currentRole(c) == models.RoleAdmin {
		distributions, err = h.DB.ListDistributions(ctx)
	} else {
		distributions, err = h.DB.ListDistributionsByDistributor(ctx, currentUserID(c))
	}
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributions": distributions})
}

// GetDistribution returns a single distribution with references resolved
func (h *Handler) GetDistribution(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	distribution, err := h.DB.GetDistributionResponse(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Distribution not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"distribution": distribution})
}

// CreateDistribution moves units from a collected allotment to a named
// recipient. The headroom check and the insert run under a per-allotment row
// lock.
func (h *Handler) CreateDistribution(c *gin.Context) {
	var req models.CreateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Allotment, recipient name, and quantity are required",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	allotment, err := h.DB.GetAllotment(ctx, req.AllotmentID)
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}
	if allotment.Status != models.AllotmentStatusCollected {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid state",
			Message: "Can only distribute from collected allotments",
		})
		return
	}
	if !canModify(c, allotment.DistributorID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "You can only distribute your own allotments",
		})
		return
	}

	distribution, err := h.DB.CreateDistribution(ctx, req.AllotmentID,
		req.RecipientName, req.Quantity, optionalString(req.Notes))
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}

	logging.LogKV("info", "distribution created", map[string]interface{}{
		"distribution_id": distribution.ID,
		"allotment_id":    distribution.AllotmentID,
		"quantity":        distribution.Quantity,
	})

	resolved, err := h.DB.GetDistributionResponse(ctx, distribution.ID)
	if err != nil {
		respondError(c, err, "Distribution not found")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Distribution created successfully",
		Data:    resolved,
	})
}

// UpdateDistribution replaces recipient, quantity and notes, rechecking the
// headroom without counting the record being edited
func (h *Handler) UpdateDistribution(c *gin.Context) {
	var req models.UpdateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Recipient name and quantity are required",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	distribution, err := h.DB.GetDistribution(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Distribution not found")
		return
	}
	if !canModify(c, distribution.DistributorID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "You can only update your own distributions",
		})
		return
	}

	updated, err := h.DB.UpdateDistribution(ctx, distribution.ID,
		req.RecipientName, req.Quantity, optionalString(req.Notes))
	if err != nil {
		respondError(c, err, "Distribution not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Distribution updated successfully",
		Data:    updated,
	})
}

// DeleteDistribution removes a distribution. Nothing is restored anywhere;
// units only come back through a reset or an allotment return.
func (h *Handler) DeleteDistribution(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	distribution, err := h.DB.GetDistribution(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Distribution not found")
		return
	}
	if !canModify(c, distribution.DistributorID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "You can only delete your own distributions",
		})
		return
	}

	if err := h.DB.DeleteDistribution(ctx, distribution.ID); err != nil {
		respondError(c, err, "Distribution not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Distribution deleted successfully",
	})
}
