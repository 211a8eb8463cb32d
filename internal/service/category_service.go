package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// CategoryService manages item categories.
type CategoryService struct {
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, dispatcher events.Dispatcher) *CategoryService {
	return &CategoryService{categories: categories, dispatcher: dispatcher}
}

// List returns all active categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListActive(ctx)
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	category := &domain.Category{
		Name:        name,
		Description: description,
		Status:      domain.CategoryStatusActive,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCategoryCreated,
			Timestamp: time.Now(),
			Payload:   events.CategoryCreatedPayload{CategoryID: category.ID, Name: category.Name},
		})
	}
	return category, nil
}

// Update edits an active category; a missing or soft-deleted id is a 404.
func (s *CategoryService) Update(ctx context.Context, id int64, name, description string) error {
	category, err := s.categories.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return err
	}

	category.Name = name
	category.Description = description
	return s.categories.Update(ctx, category)
}

// Delete soft-deletes an active category.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categories.GetActiveByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return err
	}
	return s.categories.SoftDelete(ctx, id)
}
