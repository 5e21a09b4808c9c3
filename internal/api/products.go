package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milkantri/inventory-service/internal/models"
)

// GetProducts returns all products, newest first
func (h *Handler) GetProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.DB.ListProducts(ctx)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct returns a single product
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.DB.GetProduct(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct creates a product; the initial quantity becomes the daily
// baseline
func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Product name and quantity are required",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.DB.CreateProduct(ctx, req.Name, *req.Quantity, currentUserID(c))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct overwrites a product's name and quantity and rebases its
// daily baseline
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request data",
			Message: "Product name and quantity are required",
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.DB.UpdateProduct(ctx, c.Param("id"), req.Name, *req.Quantity)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct removes a product
func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.DB.DeleteProduct(ctx, c.Param("id")); err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Product deleted successfully",
	})
}
