package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milkantri/inventory-service/internal/logging"
	"github.com/milkantri/inventory-service/internal/models"
)

// GetAllotments returns all allotments with references resolved
func (h *Handler) GetAllotments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	allotments, err := h.DB.ListAllotments(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"allotments": allotments})
}

// GetMyAllotments returns the calling distributor's allotments
func (h *Handler) GetMyAllotments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	allotments, err := h.DB.ListAllotmentsByDistributor(ctx, currentUserID(c))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"allotments": allotments})
}

// CreateAllotment commits product quantity to a distributor. The insert and
// the product decrement land in one transaction.
func (h *Handler) CreateAllotment(c *gin.Context) {
	var req models.CreateAllotmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Product, distributor, and quantity are required",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	// Resolve both references up front so missing product and missing
	// distributor report distinctly; the transactional create re-checks the
	// pool under a row lock.
	if _, err := h.DB.GetProduct(ctx, req.ProductID); err != nil {
		respondError(c, err, "Product not found")
		return
	}
	if _, err := h.DB.GetDistributorByID(ctx, req.DistributorID); err != nil {
		respondError(c, err, "Distributor not found")
		return
	}

	allotment, err := h.DB.CreateAllotment(ctx, req.ProductID, req.DistributorID,
		currentUserID(c), req.Quantity, optionalString(req.Notes))
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}

	logging.LogKV("info", "allotment created", map[string]interface{}{
		"allotment_id": allotment.ID,
		"product_id":   allotment.ProductID,
		"quantity":     allotment.Quantity,
	})

	resolved, err := h.DB.GetAllotmentResponse(ctx, allotment.ID)
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Product allotted successfully",
		Data:    resolved,
	})
}

// UpdateAllotmentStatus flips an allotment between pending and collected.
// Only the owning distributor or an admin may do it; returned is out of reach
// here.
func (h *Handler) UpdateAllotmentStatus(c *gin.Context) {
	var req models.UpdateAllotmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.IsSettable() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid status",
			Message: `Invalid status. Must be "pending" or "collected"`,
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	allotment, err := h.DB.GetAllotment(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}
	if !canModify(c, allotment.DistributorID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "You can only update your own allotments",
		})
		return
	}

	updated, err := h.DB.UpdateAllotmentStatus(ctx, allotment.ID, req.Status)
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Allotment status updated successfully",
		Data: gin.H{
			"id":     updated.ID,
			"status": updated.Status,
		},
	})
}

// ReturnAllotment retires an allotment and restores its undistributed units
// to the product pool
func (h *Handler) ReturnAllotment(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	allotment, err := h.DB.GetAllotment(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}
	if !canModify(c, allotment.DistributorID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "Forbidden",
			Message: "You can only return your own allotments",
		})
		return
	}

	returned, err := h.DB.ReturnAllotment(ctx, allotment.ID)
	if err != nil {
		respondError(c, err, "Allotment not found")
		return
	}

	logging.LogKV("info", "allotment returned", map[string]interface{}{
		"allotment_id":      allotment.ID,
		"returned_quantity": returned,
	})

	c.JSON(http.StatusOK, models.ReturnAllotmentResponse{
		Message:          "Allotment returned successfully",
		AllotmentID:      allotment.ID,
		ReturnedQuantity: returned,
	})
}
