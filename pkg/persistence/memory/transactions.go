package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

type transactionRepository struct {
	p *Persistence
}

func cloneTransaction(transaction *models.Transaction) *models.Transaction {
	copied := *transaction

	if transaction.BikeID != nil {
		bikeID := *transaction.BikeID
		copied.BikeID = &bikeID
	}

	if transaction.DateCompleted != nil {
		dateCompleted := *transaction.DateCompleted
		copied.DateCompleted = &dateCompleted
	}

	return &copied
}

func (r *transactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*models.Transaction, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	transactions := make([]*models.Transaction, 0)

	for _, transaction := range r.p.transactions {
		if filter.CustomerID != "" && transaction.CustomerID != filter.CustomerID {
			continue
		}

		if filter.TransactionType != nil && transaction.TransactionType != *filter.TransactionType {
			continue
		}

		if filter.IsCompleted != nil && transaction.IsCompleted != *filter.IsCompleted {
			continue
		}

		if filter.IsPaid != nil && transaction.IsPaid != *filter.IsPaid {
			continue
		}

		transactions = append(transactions, cloneTransaction(transaction))
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})

	return transactions, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	transaction, ok := r.p.transactions[id]
	if !ok {
		return nil, nil
	}

	return cloneTransaction(transaction), nil
}

func (r *transactionRepository) Save(ctx context.Context, transaction *models.Transaction) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if existing, ok := r.p.transactions[transaction.ID]; ok {
		transaction.TransactionNum = existing.TransactionNum
	} else {
		transaction.TransactionNum = r.p.nextTransactionNum
		r.p.nextTransactionNum++
	}

	r.p.transactions[transaction.ID] = cloneTransaction(transaction)

	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.transactions[id]; !ok {
		return persistence.ErrTransactionNotFound
	}

	delete(r.p.transactions, id)

	// Cascade: steps live and die with their owning transaction.
	for stepID, step := range r.p.steps {
		if step.TransactionID == id {
			delete(r.p.steps, stepID)
		}
	}

	return nil
}

func (r *transactionRepository) Summary(ctx context.Context, filter persistence.SummaryFilter) (*models.TransactionsSummary, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	var summary models.TransactionsSummary

	for _, transaction := range r.p.transactions {
		switch {
		case !transaction.IsCompleted && transaction.IsBeerBike:
			summary.QuantityBeerBikeIncomplete++
		case !transaction.IsCompleted:
			if !slices.Contains(filter.ExcludedTypes, transaction.TransactionType) {
				summary.QuantityIncomplete++
			}
		case !transaction.IsPaid:
			summary.QuantityWaitingOnPickup++
		}
	}

	return &summary, nil
}
