// Package memory provides an in-memory persistence implementation used by
// tests and local development. It mirrors the behavior of the PostgreSQL
// backend, including the step_order uniqueness guard and the
// transaction-delete cascade over workflow steps.
package memory

import (
	"context"
	"sync"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

// Persistence implements persistence.Persistence on process-local maps.
type Persistence struct {
	mu sync.RWMutex

	steps         map[string]*models.WorkflowStep
	transactions  map[string]*models.Transaction
	customers     map[string]*models.Customer
	bikes         map[string]*models.Bike
	items         map[string]*models.Item
	repairs       map[string]*models.Repair
	orderRequests map[string]*models.OrderRequest
	users         map[string]*models.User

	nextTransactionNum int64
}

// NewPersistence creates an empty in-memory persistence layer.
func NewPersistence() *Persistence {
	return &Persistence{
		steps:              make(map[string]*models.WorkflowStep),
		transactions:       make(map[string]*models.Transaction),
		customers:          make(map[string]*models.Customer),
		bikes:              make(map[string]*models.Bike),
		items:              make(map[string]*models.Item),
		repairs:            make(map[string]*models.Repair),
		orderRequests:      make(map[string]*models.OrderRequest),
		users:              make(map[string]*models.User),
		nextTransactionNum: 1,
	}
}

func (p *Persistence) WorkflowSteps() persistence.WorkflowStepRepository {
	return &stepRepository{p: p}
}

func (p *Persistence) Transactions() persistence.TransactionRepository {
	return &transactionRepository{p: p}
}

func (p *Persistence) Customers() persistence.CustomerRepository {
	return &customerRepository{p: p}
}

func (p *Persistence) Bikes() persistence.BikeRepository {
	return &bikeRepository{p: p}
}

func (p *Persistence) Items() persistence.ItemRepository {
	return &itemRepository{p: p}
}

func (p *Persistence) Repairs() persistence.RepairRepository {
	return &repairRepository{p: p}
}

func (p *Persistence) OrderRequests() persistence.OrderRequestRepository {
	return &orderRequestRepository{p: p}
}

func (p *Persistence) Users() persistence.UserRepository {
	return &userRepository{p: p}
}

func (p *Persistence) HealthCheck(ctx context.Context) error {
	return nil
}

func (p *Persistence) Close(ctx context.Context) error {
	return nil
}
