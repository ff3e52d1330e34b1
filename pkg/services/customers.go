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

// Customers manages the customer directory.
type Customers struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewCustomers(p persistence.Persistence, logger *slog.Logger) *Customers {
	return &Customers{persistence: p, logger: logger.With("service", "customers")}
}

func (s *Customers) List(ctx context.Context) ([]*models.Customer, error) {
	return s.persistence.Customers().List(ctx)
}

func (s *Customers) FetchByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.persistence.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	return customer, nil
}

func (s *Customers) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if strings.TrimSpace(customer.FirstName) == "" || strings.TrimSpace(customer.Email) == "" {
		return nil, ErrInvalidRequest
	}

	now := time.Now().UTC()
	customer.ID = uuid.New().String()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if err := s.persistence.Customers().Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

func (s *Customers) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	existing, err := s.FetchByID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Customers().Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

func (s *Customers) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Customers().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Customer deleted", "customer_id", id)

	return nil
}
