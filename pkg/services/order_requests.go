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

// OrderRequests manages restock requests raised against inventory items.
type OrderRequests struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewOrderRequests(p persistence.Persistence, logger *slog.Logger) *OrderRequests {
	return &OrderRequests{persistence: p, logger: logger.With("service", "order_requests")}
}

func (s *OrderRequests) List(ctx context.Context) ([]*models.OrderRequest, error) {
	return s.persistence.OrderRequests().List(ctx)
}

func (s *OrderRequests) FetchByID(ctx context.Context, id string) (*models.OrderRequest, error) {
	request, err := s.persistence.OrderRequests().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order request: %w", err)
	}

	if request == nil {
		return nil, ErrOrderRequestNotFound
	}

	return request, nil
}

func (s *OrderRequests) Create(ctx context.Context, request *models.OrderRequest) (*models.OrderRequest, error) {
	if strings.TrimSpace(request.ItemID) == "" {
		return nil, ErrInvalidRequest
	}

	if request.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	item, err := s.persistence.Items().GetByID(ctx, request.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}

	if item == nil {
		return nil, ErrItemNotFound
	}

	now := time.Now().UTC()
	request.ID = uuid.New().String()
	request.Ordered = false
	request.CreatedAt = now
	request.UpdatedAt = now

	if err := s.persistence.OrderRequests().Save(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}

	return request, nil
}

func (s *OrderRequests) Update(ctx context.Context, request *models.OrderRequest) (*models.OrderRequest, error) {
	existing, err := s.FetchByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	if request.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	request.CreatedAt = existing.CreatedAt
	request.UpdatedAt = time.Now().UTC()

	if err := s.persistence.OrderRequests().Save(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update order request: %w", err)
	}

	return request, nil
}

func (s *OrderRequests) Delete(ctx context.Context, id string) error {
	if err := s.persistence.OrderRequests().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Order request deleted", "order_request_id", id)

	return nil
}
