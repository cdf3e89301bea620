// Package primary defines the primary ports of the scheduling engine: the
// domain API a thin collaborator (CLI, web handler) invokes. Boundary structs
// carry no persistence detail.
package primary

import "context"

// HafizService is the primary port for hafiz lifecycle operations.
type HafizService interface {
	// CreateHafiz creates a hafiz, populates a state row for every active
	// catalog item, and opens the first Full Cycle plan.
	CreateHafiz(ctx context.Context, req CreateHafizRequest) (*Hafiz, error)

	// GetHafiz retrieves a hafiz by ID.
	GetHafiz(ctx context.Context, hafizID int64) (*Hafiz, error)

	// ListHafizs lists hafizs, optionally scoped to a user (0 = all).
	ListHafizs(ctx context.Context, userID int64) ([]*Hafiz, error)

	// UpdateHafiz updates name, capacity, or clock.
	UpdateHafiz(ctx context.Context, req UpdateHafizRequest) error

	// DeleteHafiz removes a hafiz and all dependent rows.
	DeleteHafiz(ctx context.Context, hafizID int64) error

	// PopulateItems tops up missing state rows for items added to the
	// catalog after the hafiz was created. Returns the number added.
	PopulateItems(ctx context.Context, hafizID int64) (int, error)
}

// CreateHafizRequest contains parameters for creating a hafiz.
type CreateHafizRequest struct {
	UserID        int64
	Name          string
	DailyCapacity int // pages/day target; 0 uses the default
}

// UpdateHafizRequest contains parameters for updating a hafiz.
type UpdateHafizRequest struct {
	HafizID       int64
	Name          string // "" keeps the current name
	DailyCapacity int    // 0 keeps the current capacity
	CurrentDate   string // "" keeps the current clock
}

// Hafiz represents a hafiz at the port boundary.
type Hafiz struct {
	ID            int64
	UserID        int64
	Name          string
	DailyCapacity int
	CurrentDate   string
}
