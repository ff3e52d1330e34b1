// Package persistence provides the data storage abstraction layer for the
// bike shop backend.
package persistence

import (
	"context"

	"github.com/campuscycles/gearbox/pkg/models"
)

// Persistence is the root storage handle. Repositories are constructed once
// at startup and handed to services; there is no lazy re-initialization.
type Persistence interface {
	WorkflowSteps() WorkflowStepRepository
	Transactions() TransactionRepository
	Customers() CustomerRepository
	Bikes() BikeRepository
	Items() ItemRepository
	Repairs() RepairRepository
	OrderRequests() OrderRequestRepository
	Users() UserRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// StepFilter narrows workflow step listings. Zero-valued fields match all.
type StepFilter struct {
	TransactionID string
	WorkflowType  *models.WorkflowType
	IsCompleted   *bool
	StepOrder     *int
}

// WorkflowStepRepository stores the ordered steps of workflow instances.
// Listings are always ordered by (step_order ASC, created_at ASC).
type WorkflowStepRepository interface {
	List(ctx context.Context, filter StepFilter) ([]*models.WorkflowStep, error)
	ListByTransactionAndType(ctx context.Context, transactionID string, workflowType models.WorkflowType) ([]*models.WorkflowStep, error)
	// GetByID returns (nil, nil) when no step exists with the given ID.
	GetByID(ctx context.Context, id string) (*models.WorkflowStep, error)
	Create(ctx context.Context, step *models.WorkflowStep) error
	// CreateBatch inserts all steps in one transaction; if any insert fails
	// none are committed. A step_order collision within a
	// (transaction_id, workflow_type) pair yields ErrStepOrderConflict.
	CreateBatch(ctx context.Context, steps []*models.WorkflowStep) error
	Update(ctx context.Context, step *models.WorkflowStep) error
	// Delete returns the removed step, or (nil, nil) when it was absent.
	Delete(ctx context.Context, id string) (*models.WorkflowStep, error)
	// ResetAll clears completion state on every step of the pair and returns
	// the updated set in order.
	ResetAll(ctx context.Context, transactionID string, workflowType models.WorkflowType) ([]*models.WorkflowStep, error)
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	CustomerID      string
	TransactionType *models.TransactionType
	IsCompleted     *bool
	IsPaid          *bool
}

// SummaryFilter configures the dashboard aggregation. ExcludedTypes is
// subtracted from the quantity_incomplete count only.
type SummaryFilter struct {
	ExcludedTypes []models.TransactionType
}

type TransactionRepository interface {
	List(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	Save(ctx context.Context, transaction *models.Transaction) error
	// Delete removes the transaction and, through the storage layer's
	// cascade, its workflow steps.
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, filter SummaryFilter) (*models.TransactionsSummary, error)
}

type CustomerRepository interface {
	List(ctx context.Context) ([]*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
}

type BikeRepository interface {
	List(ctx context.Context) ([]*models.Bike, error)
	GetByID(ctx context.Context, id string) (*models.Bike, error)
	Save(ctx context.Context, bike *models.Bike) error
	Delete(ctx context.Context, id string) error
}

type ItemRepository interface {
	List(ctx context.Context) ([]*models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	// GetByUPC returns (nil, nil) when no item carries the UPC.
	GetByUPC(ctx context.Context, upc string) (*models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
}

type RepairRepository interface {
	List(ctx context.Context) ([]*models.Repair, error)
	GetByID(ctx context.Context, id string) (*models.Repair, error)
	Save(ctx context.Context, repair *models.Repair) error
	Delete(ctx context.Context, id string) error
}

type OrderRequestRepository interface {
	List(ctx context.Context) ([]*models.OrderRequest, error)
	GetByID(ctx context.Context, id string) (*models.OrderRequest, error)
	Save(ctx context.Context, request *models.OrderRequest) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
