package domain

import "time"

// ItemStatus represents lifecycle states for a listed item.
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusInactive ItemStatus = "INACTIVE"
)

// Item models a product listed for sale by a seller.
type Item struct {
	ID          int64
	Title       string
	Description string
	SellerID    int64
	AuthorID    int64
	CategoryID  int64
	Status      ItemStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemDetails joins an item with the display names of its relations.
type ItemDetails struct {
	Item
	AuthorName   string
	SellerName   string
	CategoryName string
}
