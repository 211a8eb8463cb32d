package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserDeleted     EventType = "user_deleted"
	EventItemCreated     EventType = "item_created"
	EventItemUpdated     EventType = "item_updated"
	EventCategoryCreated EventType = "category_created"
)

// Actor encapsulates who triggered an event. Anonymous flows (registration)
// leave UserID nil.
type Actor struct {
	UserID *int64      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	UserID int64 `json:"user_id"`
}

// ItemCreatedPayload payload.
type ItemCreatedPayload struct {
	ItemID     int64  `json:"item_id"`
	SellerID   int64  `json:"seller_id"`
	AuthorID   int64  `json:"author_id"`
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
}

// ItemUpdatedPayload payload.
type ItemUpdatedPayload struct {
	ItemID   int64 `json:"item_id"`
	SellerID int64 `json:"seller_id"`
}

// CategoryCreatedPayload payload.
type CategoryCreatedPayload struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}
