package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

// Users manages shop employee records. Authentication happens upstream;
// this service only tracks identity and role.
type Users struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewUsers(p persistence.Persistence, logger *slog.Logger) *Users {
	return &Users{persistence: p, logger: logger.With("service", "users")}
}

func (s *Users) List(ctx context.Context) ([]*models.User, error) {
	return s.persistence.Users().List(ctx)
}

func (s *Users) FetchByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.persistence.Users().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *Users) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if strings.TrimSpace(user.Username) == "" {
		return nil, ErrInvalidRequest
	}

	if !user.Role.Valid() {
		return nil, ErrInvalidUserRole
	}

	now := time.Now().UTC()
	user.ID = uuid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.persistence.Users().Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Users) Update(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.FetchByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if !user.Role.Valid() {
		return nil, ErrInvalidUserRole
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Users().Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *Users) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Users().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "User deleted", "user_id", id)

	return nil
}
