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

// Items manages the parts and retail inventory catalog.
type Items struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewItems(p persistence.Persistence, logger *slog.Logger) *Items {
	return &Items{persistence: p, logger: logger.With("service", "items")}
}

func (s *Items) List(ctx context.Context) ([]*models.Item, error) {
	return s.persistence.Items().List(ctx)
}

func (s *Items) FetchByID(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.persistence.Items().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}

	if item == nil {
		return nil, ErrItemNotFound
	}

	return item, nil
}

// FetchByUPC looks an item up by its barcode, the path the register scanner
// uses.
func (s *Items) FetchByUPC(ctx context.Context, upc string) (*models.Item, error) {
	if strings.TrimSpace(upc) == "" {
		return nil, ErrInvalidRequest
	}

	item, err := s.persistence.Items().GetByUPC(ctx, upc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item by upc: %w", err)
	}

	if item == nil {
		return nil, ErrItemNotFound
	}

	return item, nil
}

func (s *Items) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.UPC) == "" {
		return nil, ErrInvalidRequest
	}

	now := time.Now().UTC()
	item.ID = uuid.New().String()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.persistence.Items().Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

func (s *Items) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	existing, err := s.FetchByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Items().Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

func (s *Items) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Items().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Item deleted", "item_id", id)

	return nil
}
