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

// AuthService coordinates registration and login flows. The hasher and token
// manager are capability interfaces wired in at startup.
type AuthService struct {
	users      repository.UserRepository
	hasher     auth.Hasher
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenManager, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, dispatcher: dispatcher}
}

// Register creates an account with the given role. Buyers and sellers come
// through the public endpoint; admins through the admin-gated one.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("this email is already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		Timestamp: time.Now(),
		Payload: events.UserRegisteredPayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	})
	return user, nil
}

// Login authenticates an account by email and password and issues an access
// token whose subject is the account id. Unknown email and wrong password
// produce the same opaque failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	return s.login(ctx, email, password, s.users.GetByEmail)
}

// LoginAdmin authenticates against admin accounts only.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, time.Time, error) {
	return s.login(ctx, email, password, s.users.GetAdminByEmail)
}

func (s *AuthService) login(ctx context.Context, email, password string, lookup func(context.Context, string) (*domain.User, error)) (string, time.Time, error) {
	user, err := lookup(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
		}
		return "", time.Time{}, err
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		return "", time.Time{}, apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
	}
	return s.tokens.Sign(user.ID, domain.TokenTypeAccess)
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
