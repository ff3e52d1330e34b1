// Package postgresql provides the PostgreSQL persistence implementation for
// the bike shop backend.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campuscycles/gearbox/pkg/persistence"
	"github.com/campuscycles/gearbox/pkg/persistence/sqlbase"
	"github.com/lib/pq"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger

	steps         *WorkflowStepRepository
	transactions  *TransactionRepository
	customers     *CustomerRepository
	bikes         *BikeRepository
	items         *ItemRepository
	repairs       *RepairRepository
	orderRequests *OrderRequestRepository
	users         *UserRepository
}

// NewPersistence connects to PostgreSQL and runs pending migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:            database,
		logger:        logger,
		steps:         NewWorkflowStepRepository(database, logger),
		transactions:  NewTransactionRepository(database, logger),
		customers:     NewCustomerRepository(database, logger),
		bikes:         NewBikeRepository(database, logger),
		items:         NewItemRepository(database, logger),
		repairs:       NewRepairRepository(database, logger),
		orderRequests: NewOrderRequestRepository(database, logger),
		users:         NewUserRepository(database, logger),
	}, nil
}

func (p *Persistence) WorkflowSteps() persistence.WorkflowStepRepository {
	return p.steps
}

func (p *Persistence) Transactions() persistence.TransactionRepository {
	return p.transactions
}

func (p *Persistence) Customers() persistence.CustomerRepository {
	return p.customers
}

func (p *Persistence) Bikes() persistence.BikeRepository {
	return p.bikes
}

func (p *Persistence) Items() persistence.ItemRepository {
	return p.items
}

func (p *Persistence) Repairs() persistence.RepairRepository {
	return p.repairs
}

func (p *Persistence) OrderRequests() persistence.OrderRequestRepository {
	return p.orderRequests
}

func (p *Persistence) Users() persistence.UserRepository {
	return p.users
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *Persistence) Close(ctx context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
