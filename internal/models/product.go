package models

import (
	"time"
)

// Product represents a tracked product. Quantity is the currently available,
// unreserved pool; DailyQuantity is the baseline the pool is rebased to when
// the daily cycle resets.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Quantity      int       `json:"quantity" db:"quantity"`
	DailyQuantity int       `json:"dailyQuantity" db:"daily_quantity"`
	CreatedBy     string    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductRef is the denormalized product reference embedded in allotment and
// distribution payloads.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateProductRequest represents a request to create a product. The initial
// quantity also becomes the daily baseline.
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required,min=0"`
}

// UpdateProductRequest represents an admin overwrite of a product. The new
// quantity replaces both the pool and the daily baseline.
type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required,min=0"`
}
