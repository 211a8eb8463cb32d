package domain

import "time"

// CategoryStatus represents lifecycle states for a category.
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "ACTIVE"
	CategoryStatusInactive CategoryStatus = "INACTIVE"
)

// Category classifies items. Categories are soft-deleted, never removed.
type Category struct {
	ID          int64
	Name        string
	Description string
	Status      CategoryStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
