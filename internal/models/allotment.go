package models

import (
	"time"
)

// AllotmentStatus represents the lifecycle status of an allotment
type AllotmentStatus string

const (
	AllotmentStatusPending   AllotmentStatus = "pending"
	AllotmentStatusCollected AllotmentStatus = "collected"
	AllotmentStatusReturned  AllotmentStatus = "returned"
)

// IsValid checks if the status is a known lifecycle value
func (s AllotmentStatus) IsValid() bool {
	switch s {
	case AllotmentStatusPending, AllotmentStatusCollected, AllotmentStatusReturned:
		return true
	default:
		return false
	}
}

// IsSettable reports whether the status may be set through the plain status
// update. "returned" is only reachable through the return operation.
func (s AllotmentStatus) IsSettable() bool {
	return s == AllotmentStatusPending || s == AllotmentStatusCollected
}

// Allotment is a reservation of product quantity committed by an admin to a
// distributor. Quantity is fixed at creation.
type Allotment struct {
	ID            string          `json:"id" db:"id"`
	ProductID     string          `json:"productId" db:"product_id"`
	DistributorID string          `json:"distributorId" db:"distributor_id"`
	Quantity      int             `json:"quantity" db:"quantity"`
	AllottedBy    string          `json:"allottedBy" db:"allotted_by"`
	Status        AllotmentStatus `json:"status" db:"status"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// AllotmentResponse is the list/detail payload with product and user
// references resolved, matching what the dashboards render.
type AllotmentResponse struct {
	ID          string          `json:"id"`
	Product     ProductRef      `json:"product"`
	Distributor UserRef         `json:"distributor"`
	Quantity    int             `json:"quantity"`
	Status      AllotmentStatus `json:"status"`
	Notes       *string         `json:"notes,omitempty"`
	AllottedBy  UserRef         `json:"allottedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateAllotmentRequest represents an admin committing product quantity to a
// distributor.
type CreateAllotmentRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	DistributorID string `json:"distributorId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateAllotmentStatusRequest represents a status transition request
type UpdateAllotmentStatusRequest struct {
	Status AllotmentStatus `json:"status" binding:"required"`
}

// ReturnAllotmentResponse reports how many units went back to the product pool
type ReturnAllotmentResponse struct {
	Message          string `json:"message"`
	AllotmentID      string `json:"allotmentId"`
	ReturnedQuantity int    `json:"returnedQuantity"`
}
