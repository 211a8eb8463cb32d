package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// UserService handles administrative account maintenance.
type UserService struct {
	users      repository.UserRepository
	hasher     auth.Hasher
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, hasher auth.Hasher, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, hasher: hasher, dispatcher: dispatcher}
}

// Update changes the name and/or password of an account. Nil arguments leave
// the field untouched. A new password is rehashed before storage.
func (s *UserService) Update(ctx context.Context, id int64, name, password *string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	return s.users.Update(ctx, user)
}

// Delete soft-deletes an account by flipping its status to INACTIVE.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserDeleted,
			Timestamp: time.Now(),
			Payload:   events.UserDeletedPayload{UserID: id},
		})
	}
	return nil
}

// Reports aggregates active accounts with per-role counts for the admin
// reports endpoint.
func (s *UserService) Reports(ctx context.Context) ([]domain.User, map[domain.Role]int64, int64, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, nil, 0, err
	}

	counts := make(map[domain.Role]int64, 3)
	var total int64
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSeller, domain.RoleBuyer} {
		count, err := s.users.CountActiveByRole(ctx, role)
		if err != nil {
			return nil, nil, 0, err
		}
		counts[role] = count
		total += count
	}
	return users, counts, total, nil
}
