package models

import (
	"time"
)

// Distribution records units a distributor handed to a named recipient, drawn
// from a collected allotment. DistributorID and ProductID are copied from the
// allotment at creation for denormalized lookup.
type Distribution struct {
	ID            string    `json:"id" db:"id"`
	DistributorID string    `json:"distributorId" db:"distributor_id"`
	ProductID     string    `json:"productId" db:"product_id"`
	AllotmentID   string    `json:"allotmentId" db:"allotment_id"`
	RecipientName string    `json:"recipientName" db:"recipient_name"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// AllotmentRef is the denormalized allotment reference embedded in
// distribution payloads.
type AllotmentRef struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// DistributionResponse is the list/detail payload with references resolved.
type DistributionResponse struct {
	ID            string       `json:"id"`
	Product       ProductRef   `json:"product"`
	Distributor   UserRef      `json:"distributor"`
	Allotment     AllotmentRef `json:"allotment"`
	RecipientName string       `json:"recipientName"`
	Quantity      int          `json:"quantity"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CreateDistributionRequest represents moving units from a collected allotment
// to a recipient.
type CreateDistributionRequest struct {
	AllotmentID   string `json:"allotmentId" binding:"required"`
	RecipientName string `json:"recipientName" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateDistributionRequest replaces recipient, quantity and notes. The
// headroom check excludes the record being edited.
type UpdateDistributionRequest struct {
	RecipientName string `json:"recipientName" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	Notes         string `json:"notes,omitempty"`
}
