package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ResetResponse reports what the daily reset touched
type ResetResponse struct {
	Message              string `json:"message"`
	RestoredProducts     int    `json:"restoredProducts"`
	DeletedAllotments    int    `json:"deletedAllotments"`
	DeletedDistributions int    `json:"deletedDistributions"`
}

// InventorySummary aggregates ledger state for the admin dashboard
type InventorySummary struct {
	Products           int                     `json:"products"`
	PoolQuantity       int                     `json:"poolQuantity"`
	Distributors       int                     `json:"distributors"`
	ActiveDistributors int                     `json:"activeDistributors"`
	Allotments         int                     `json:"allotments"`
	AllotmentsByStatus map[AllotmentStatus]int `json:"allotmentsByStatus"`
	AllottedQuantity   int                     `json:"allottedQuantity"`
	Distributions      int                     `json:"distributions"`
	DistributedTotal   int                     `json:"distributedTotal"`
}
