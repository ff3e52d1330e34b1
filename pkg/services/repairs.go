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

// Repairs manages the catalog of priced repair services.
type Repairs struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewRepairs(p persistence.Persistence, logger *slog.Logger) *Repairs {
	return &Repairs{persistence: p, logger: logger.With("service", "repairs")}
}

func (s *Repairs) List(ctx context.Context) ([]*models.Repair, error) {
	return s.persistence.Repairs().List(ctx)
}

func (s *Repairs) FetchByID(ctx context.Context, id string) (*models.Repair, error) {
	repair, err := s.persistence.Repairs().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repair: %w", err)
	}

	if repair == nil {
		return nil, ErrRepairNotFound
	}

	return repair, nil
}

func (s *Repairs) Create(ctx context.Context, repair *models.Repair) (*models.Repair, error) {
	if strings.TrimSpace(repair.Name) == "" {
		return nil, ErrInvalidRequest
	}

	now := time.Now().UTC()
	repair.ID = uuid.New().String()
	repair.CreatedAt = now
	repair.UpdatedAt = now

	if err := s.persistence.Repairs().Save(ctx, repair); err != nil {
		return nil, fmt.Errorf("failed to create repair: %w", err)
	}

	return repair, nil
}

func (s *Repairs) Update(ctx context.Context, repair *models.Repair) (*models.Repair, error) {
	existing, err := s.FetchByID(ctx, repair.ID)
	if err != nil {
		return nil, err
	}

	repair.CreatedAt = existing.CreatedAt
	repair.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Repairs().Save(ctx, repair); err != nil {
		return nil, fmt.Errorf("failed to update repair: %w", err)
	}

	return repair, nil
}

func (s *Repairs) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Repairs().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Repair deleted", "repair_id", id)

	return nil
}
