package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
	"github.com/lib/pq"
)

// TransactionRepository handles ledger transaction database operations.
type TransactionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *sql.DB, logger *slog.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, logger: logger}
}

const transactionColumns = `
		id
	  , transaction_num
	  , customer_id
	  , bike_id
	  , transaction_type
	  , description
	  , total_cost
	  , is_completed
	  , is_paid
	  , is_refurb
	  , is_urgent
	  , is_beer_bike
	  , is_employee
	  , created_at
	  , updated_at
	  , date_completed
`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		transaction   models.Transaction
		bikeID        sql.NullString
		dateCompleted sql.NullTime
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.TransactionNum,
		&transaction.CustomerID,
		&bikeID,
		&transaction.TransactionType,
		&transaction.Description,
		&transaction.TotalCost,
		&transaction.IsCompleted,
		&transaction.IsPaid,
		&transaction.IsRefurb,
		&transaction.IsUrgent,
		&transaction.IsBeerBike,
		&transaction.IsEmployee,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
		&dateCompleted,
	)
	if err != nil {
		return nil, err
	}

	if bikeID.Valid {
		transaction.BikeID = &bikeID.String
	}

	if dateCompleted.Valid {
		transaction.DateCompleted = &dateCompleted.Time
	}

	return &transaction, nil
}

// List returns transactions matching the filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*models.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE 1=1"
	args := make([]any, 0, 4)

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += " AND customer_id = $" + strconv.Itoa(len(args))
	}

	if filter.TransactionType != nil {
		args = append(args, string(*filter.TransactionType))
		query += " AND transaction_type = $" + strconv.Itoa(len(args))
	}

	if filter.IsCompleted != nil {
		args = append(args, *filter.IsCompleted)
		query += " AND is_completed = $" + strconv.Itoa(len(args))
	}

	if filter.IsPaid != nil {
		args = append(args, *filter.IsPaid)
		query += " AND is_paid = $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	transactions := make([]*models.Transaction, 0)

	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		transactions = append(transactions, transaction)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// GetByID returns a transaction by its ID, or (nil, nil) when absent.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE id = $1"

	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	return transaction, nil
}

// Save upserts a transaction. The ledger number is assigned by the database
// sequence on first insert and reported back on the model.
func (r *TransactionRepository) Save(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, customer_id, bike_id, transaction_type,
			description, total_cost, is_completed, is_paid, is_refurb,
			is_urgent, is_beer_bike, is_employee, created_at, updated_at,
			date_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			bike_id = EXCLUDED.bike_id,
			transaction_type = EXCLUDED.transaction_type,
			description = EXCLUDED.description,
			total_cost = EXCLUDED.total_cost,
			is_completed = EXCLUDED.is_completed,
			is_paid = EXCLUDED.is_paid,
			is_refurb = EXCLUDED.is_refurb,
			is_urgent = EXCLUDED.is_urgent,
			is_beer_bike = EXCLUDED.is_beer_bike,
			is_employee = EXCLUDED.is_employee,
			updated_at = EXCLUDED.updated_at,
			date_completed = EXCLUDED.date_completed
		RETURNING transaction_num
	`

	err := r.db.QueryRowContext(ctx, query,
		transaction.ID,
		transaction.CustomerID,
		transaction.BikeID,
		string(transaction.TransactionType),
		transaction.Description,
		transaction.TotalCost,
		transaction.IsCompleted,
		transaction.IsPaid,
		transaction.IsRefurb,
		transaction.IsUrgent,
		transaction.IsBeerBike,
		transaction.IsEmployee,
		transaction.CreatedAt,
		transaction.UpdatedAt,
		transaction.DateCompleted,
	).Scan(&transaction.TransactionNum)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction; its workflow steps go with it via the
// ON DELETE CASCADE on workflow_steps.transaction_id.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.ErrTransactionNotFound
	}

	return nil
}

// Summary computes the dashboard counters in a single pass over the table.
// quantity_waiting_on_safety_check has no backing predicate yet and is
// always zero.
func (r *TransactionRepository) Summary(ctx context.Context, filter persistence.SummaryFilter) (*models.TransactionsSummary, error) {
	excluded := make([]string, 0, len(filter.ExcludedTypes))
	for _, transactionType := range filter.ExcludedTypes {
		excluded = append(excluded, string(transactionType))
	}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE is_completed = FALSE AND is_beer_bike = FALSE
				AND NOT transaction_type = ANY($1)) AS quantity_incomplete
		  , COUNT(*) FILTER (WHERE is_completed = FALSE AND is_beer_bike = TRUE) AS quantity_beer_bike_incomplete
		  , COUNT(*) FILTER (WHERE is_completed = TRUE AND is_paid = FALSE) AS quantity_waiting_on_pickup
		FROM transactions
	`

	var summary models.TransactionsSummary

	err := r.db.QueryRowContext(ctx, query, pq.Array(excluded)).Scan(
		&summary.QuantityIncomplete,
		&summary.QuantityBeerBikeIncomplete,
		&summary.QuantityWaitingOnPickup,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transactions summary: %w", err)
	}

	return &summary, nil
}
