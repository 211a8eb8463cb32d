package dto

import "github.com/spec-kit/marketplace-service/internal/domain"

// ItemResponse lists an item with the display names of its relations.
type ItemResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	AuthorName  string   `json:"authorName"`
	SellerName  string   `json:"sellerName"`
	Categories  []string `json:"categories"`
}

// NewItemResponse maps an item with details to its response shape.
func NewItemResponse(item domain.ItemDetails) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		AuthorName:  item.AuthorName,
		SellerName:  item.SellerName,
		Categories:  []string{item.CategoryName},
	}
}

// NewItemResponses maps a list of items.
func NewItemResponses(items []domain.ItemDetails) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}
