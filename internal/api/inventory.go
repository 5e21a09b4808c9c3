package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milkantri/inventory-service/internal/logging"
	"github.com/milkantri/inventory-service/internal/models"
)

// ResetInventory rebases every product to its daily baseline and wipes all
// allotments and distributions. Irreversible.
func (h *Handler) ResetInventory(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	counts, err := h.DB.ResetInventory(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}

	logging.LogKV("info", "inventory reset", map[string]interface{}{
		"restored_products":     counts.RestoredProducts,
		"deleted_allotments":    counts.DeletedAllotments,
		"deleted_distributions": counts.DeletedDistributions,
		"by":                    currentUserID(c),
	})

	c.JSON(http.StatusOK, models.ResetResponse{
		Message:              "Inventory reset successfully",
		RestoredProducts:     counts.RestoredProducts,
		DeletedAllotments:    counts.DeletedAllotments,
		DeletedDistributions: counts.DeletedDistributions,
	})
}

// GetInventorySummary returns aggregated ledger state for the admin dashboard
func (h *Handler) GetInventorySummary(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	summary, err := h.DB.GetInventorySummary(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
