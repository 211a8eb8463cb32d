package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const (
	itemListCacheKey     = "items:active"
	itemSearchCachePfx   = "items:search:"
	itemSearchCacheLimit = 128
)

// ItemService manages item listings. Reads go through a best-effort Redis
// cache that writes invalidate.
type ItemService struct {
	items      repository.ItemRepository
	authors    repository.AuthorRepository
	categories repository.CategoryRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ItemDependencies encapsulates collaborator requirements for the service.
type ItemDependencies struct {
	ItemRepo     repository.ItemRepository
	AuthorRepo   repository.AuthorRepository
	CategoryRepo repository.CategoryRepository
	Cache        *persistence.Redis
	CacheTTL     time.Duration
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewItemService builds the service.
func NewItemService(deps ItemDependencies) *ItemService {
	return &ItemService{
		items:      deps.ItemRepo,
		authors:    deps.AuthorRepo,
		categories: deps.CategoryRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create lists a new item owned by the calling seller. The referenced author
// and category must exist.
func (s *ItemService) Create(ctx context.Context, sellerID int64, title, description string, authorID, categoryID int64) (*domain.Item, error) {
	exists, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("author", nil)
	}

	if _, err := s.categories.GetActiveByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}

	item := &domain.Item{
		Title:       title,
		Description: description,
		SellerID:    sellerID,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		Status:      domain.ItemStatusActive,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventItemCreated,
		Actor:     events.Actor{UserID: &sellerID, Role: domain.RoleSeller},
		Timestamp: time.Now(),
		Payload: events.ItemCreatedPayload{
			ItemID:     item.ID,
			SellerID:   sellerID,
			AuthorID:   authorID,
			CategoryID: categoryID,
			Title:      title,
		},
	})
	return item, nil
}

// Update edits an item's title or description. Only the owning seller may
// edit; anyone else gets the same 404 as a missing item.
func (s *ItemService) Update(ctx context.Context, sellerID, itemID int64, title, description *string) error {
	owned, err := s.items.OwnedBy(ctx, itemID, sellerID)
	if err != nil {
		return err
	}
	if !owned {
		return apperrors.NewNotFound("item", nil)
	}

	item, err := s.items.GetActiveByID(ctx, itemID)
	if err != nil {
		return err
	}
	if title != nil {
		item.Title = *title
	}
	if description != nil {
		item.Description = *description
	}
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventItemUpdated,
		Actor:     events.Actor{UserID: &sellerID, Role: domain.RoleSeller},
		Timestamp: time.Now(),
		Payload:   events.ItemUpdatedPayload{ItemID: itemID, SellerID: sellerID},
	})
	return nil
}

// List returns all active items, served from the cache when warm.
func (s *ItemService) List(ctx context.Context) ([]domain.ItemDetails, error) {
	var cached []domain.ItemDetails
	if s.cache.GetJSON(ctx, itemListCacheKey, &cached) {
		return cached, nil
	}

	items, err := s.items.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, itemListCacheKey, items, s.cacheTTL)
	return items, nil
}

// Search matches the query against title and description of active items.
func (s *ItemService) Search(ctx context.Context, query string) ([]domain.ItemDetails, error) {
	cacheable := len(query) <= itemSearchCacheLimit
	key := itemSearchCachePfx + query

	if cacheable {
		var cached []domain.ItemDetails
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached, nil
		}
	}

	items, err := s.items.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.SetJSON(ctx, key, items, s.cacheTTL)
	}
	return items, nil
}

// invalidateCache drops the list cache after a write. Search entries are
// left to expire via TTL.
func (s *ItemService) invalidateCache(ctx context.Context) {
	s.cache.Delete(ctx, itemListCacheKey)
}

func (s *ItemService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
