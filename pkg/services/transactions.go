package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuscycles/gearbox/pkg/eventbus"
	"github.com/campuscycles/gearbox/pkg/events"
	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

// SummaryConfig tunes the dashboard aggregation. Transactions of an excluded
// type never count toward quantity_incomplete; the other counters ignore the
// exclusion list.
type SummaryConfig struct {
	ExcludedTransactionTypes []models.TransactionType
}

// DefaultSummaryConfig keeps internal refurb and employee work out of the
// front-desk incomplete queue.
func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		ExcludedTransactionTypes: []models.TransactionType{
			models.TransactionTypeRetrospec,
			models.TransactionTypeRefurb,
			models.TransactionTypeEmployee,
		},
	}
}

// Transactions manages the shop ledger and its dashboard summary.
type Transactions struct {
	persistence   persistence.Persistence
	publisher     eventbus.EventPublisher
	summaryConfig SummaryConfig
	logger        *slog.Logger
}

func NewTransactions(p persistence.Persistence, publisher eventbus.EventPublisher, config SummaryConfig, logger *slog.Logger) *Transactions {
	return &Transactions{
		persistence:   p,
		publisher:     publisher,
		summaryConfig: config,
		logger:        logger.With("service", "transactions"),
	}
}

func (s *Transactions) List(ctx context.Context, filter persistence.TransactionFilter) ([]*models.Transaction, error) {
	if filter.TransactionType != nil && !filter.TransactionType.Valid() {
		return nil, ErrInvalidTransactionType
	}

	return s.persistence.Transactions().List(ctx, filter)
}

func (s *Transactions) FetchByID(ctx context.Context, id string) (*models.Transaction, error) {
	transaction, err := s.persistence.Transactions().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}

	if transaction == nil {
		return nil, ErrTransactionNotFound
	}

	return transaction, nil
}

func (s *Transactions) Create(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	if !transaction.TransactionType.Valid() {
		return nil, ErrInvalidTransactionType
	}

	if strings.TrimSpace(transaction.CustomerID) == "" {
		return nil, ErrInvalidRequest
	}

	customer, err := s.persistence.Customers().GetByID(ctx, transaction.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	now := time.Now().UTC()
	transaction.ID = uuid.New().String()
	transaction.IsCompleted = false
	transaction.DateCompleted = nil
	transaction.IsBeerBike = transaction.TransactionType == models.TransactionTypeBeerBike
	transaction.IsRefurb = transaction.TransactionType == models.TransactionTypeRefurb
	transaction.IsEmployee = transaction.TransactionType == models.TransactionTypeEmployee
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	if err := s.persistence.Transactions().Save(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction created",
		"transaction_id", transaction.ID, "transaction_num", transaction.TransactionNum,
		"transaction_type", transaction.TransactionType)

	s.publish(ctx, transaction.ID, events.TransactionCreated{
		BaseEvent:       s.baseEvent(events.TransactionCreatedEvent, transaction.ID),
		TransactionType: transaction.TransactionType,
		CustomerID:      transaction.CustomerID,
	})

	return transaction, nil
}

// UpdateTransactionParams carries the mutable fields of a transaction
// update. Nil fields are left untouched.
type UpdateTransactionParams struct {
	Description *string
	TotalCost   *float64
	BikeID      *string
	IsCompleted *bool
	IsPaid      *bool
	IsUrgent    *bool
}

func (s *Transactions) Update(ctx context.Context, id string, params UpdateTransactionParams) (*models.Transaction, error) {
	transaction, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		transaction.Description = *params.Description
	}

	if params.TotalCost != nil {
		transaction.TotalCost = *params.TotalCost
	}

	if params.BikeID != nil {
		transaction.BikeID = params.BikeID
	}

	if params.IsPaid != nil {
		transaction.IsPaid = *params.IsPaid
	}

	if params.IsUrgent != nil {
		transaction.IsUrgent = *params.IsUrgent
	}

	completed := false

	if params.IsCompleted != nil {
		switch {
		case *params.IsCompleted && !transaction.IsCompleted:
			now := time.Now().UTC()
			transaction.IsCompleted = true
			transaction.DateCompleted = &now
			completed = true
		case !*params.IsCompleted && transaction.IsCompleted:
			transaction.IsCompleted = false
			transaction.DateCompleted = nil
		}
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Transactions().Save(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if completed {
		s.publish(ctx, transaction.ID, events.TransactionCompleted{
			BaseEvent:       s.baseEvent(events.TransactionCompletedEvent, transaction.ID),
			TransactionType: transaction.TransactionType,
			DateCompleted:   *transaction.DateCompleted,
		})
	}

	return transaction, nil
}

// Delete removes a transaction and, through the storage cascade, its
// workflow steps.
func (s *Transactions) Delete(ctx context.Context, id string) error {
	err := s.persistence.Transactions().Delete(ctx, id)
	if err != nil {
		if persistence.IsTransactionNotFound(err) {
			return ErrTransactionNotFound
		}

		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction deleted", "transaction_id", id)

	return nil
}

// Summary recomputes the dashboard counters from the current ledger state.
func (s *Transactions) Summary(ctx context.Context) (*models.TransactionsSummary, error) {
	summary, err := s.persistence.Transactions().Summary(ctx, persistence.SummaryFilter{
		ExcludedTypes: s.summaryConfig.ExcludedTransactionTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute transactions summary: %w", err)
	}

	return summary, nil
}

func (s *Transactions) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}

func (s *Transactions) baseEvent(eventType events.EventType, transactionID string) events.BaseEvent {
	return events.BaseEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		TransactionID: transactionID,
	}
}
