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

// Bikes manages the bike registry.
type Bikes struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewBikes(p persistence.Persistence, logger *slog.Logger) *Bikes {
	return &Bikes{persistence: p, logger: logger.With("service", "bikes")}
}

func (s *Bikes) List(ctx context.Context) ([]*models.Bike, error) {
	return s.persistence.Bikes().List(ctx)
}

func (s *Bikes) FetchByID(ctx context.Context, id string) (*models.Bike, error) {
	bike, err := s.persistence.Bikes().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bike: %w", err)
	}

	if bike == nil {
		return nil, ErrBikeNotFound
	}

	return bike, nil
}

func (s *Bikes) Create(ctx context.Context, bike *models.Bike) (*models.Bike, error) {
	if strings.TrimSpace(bike.Make) == "" || strings.TrimSpace(bike.Model) == "" {
		return nil, ErrInvalidRequest
	}

	now := time.Now().UTC()
	bike.ID = uuid.New().String()
	bike.CreatedAt = now
	bike.UpdatedAt = now

	if err := s.persistence.Bikes().Save(ctx, bike); err != nil {
		return nil, fmt.Errorf("failed to create bike: %w", err)
	}

	return bike, nil
}

func (s *Bikes) Update(ctx context.Context, bike *models.Bike) (*models.Bike, error) {
	existing, err := s.FetchByID(ctx, bike.ID)
	if err != nil {
		return nil, err
	}

	bike.CreatedAt = existing.CreatedAt
	bike.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Bikes().Save(ctx, bike); err != nil {
		return nil, fmt.Errorf("failed to update bike: %w", err)
	}

	return bike, nil
}

func (s *Bikes) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Bikes().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Bike deleted", "bike_id", id)

	return nil
}
