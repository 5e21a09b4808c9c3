package models

import (
	"time"
)

// Role represents a user's role within the organization
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDistributor Role = "distributor"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDistributor:
		return true
	default:
		return false
	}
}

// User represents an account in the identity store. PasswordHash never leaves
// the server.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserRef is the denormalized user reference embedded in allotment and
// distribution payloads.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the user's profile
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// CreateDistributorRequest represents a request to create a distributor account
type CreateDistributorRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UpdateDistributorRequest represents a request to edit a distributor account.
// Password is only rehashed when provided.
type UpdateDistributorRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}
