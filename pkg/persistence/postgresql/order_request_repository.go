package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

// OrderRequestRepository handles order-request database operations.
type OrderRequestRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewOrderRequestRepository(db *sql.DB, logger *slog.Logger) *OrderRequestRepository {
	return &OrderRequestRepository{db: db, logger: logger}
}

const orderRequestColumns = "id, item_id, transaction_id, quantity, notes, ordered, created_at, updated_at"

func scanOrderRequest(row rowScanner) (*models.OrderRequest, error) {
	var (
		request       models.OrderRequest
		transactionID sql.NullString
	)

	err := row.Scan(
		&request.ID,
		&request.ItemID,
		&transactionID,
		&request.Quantity,
		&request.Notes,
		&request.Ordered,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if transactionID.Valid {
		request.TransactionID = &transactionID.String
	}

	return &request, nil
}

func (r *OrderRequestRepository) List(ctx context.Context) ([]*models.OrderRequest, error) {
	query := "SELECT " + orderRequestColumns + " FROM order_requests ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query order requests: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	requests := make([]*models.OrderRequest, 0)

	for rows.Next() {
		request, err := scanOrderRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order request: %w", err)
		}

		requests = append(requests, request)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating order requests: %w", err)
	}

	return requests, nil
}

func (r *OrderRequestRepository) GetByID(ctx context.Context, id string) (*models.OrderRequest, error) {
	query := "SELECT " + orderRequestColumns + " FROM order_requests WHERE id = $1"

	request, err := scanOrderRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan order request: %w", err)
	}

	return request, nil
}

func (r *OrderRequestRepository) Save(ctx context.Context, request *models.OrderRequest) error {
	query := `
		INSERT INTO order_requests (id, item_id, transaction_id, quantity,
			notes, ordered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			item_id = EXCLUDED.item_id,
			transaction_id = EXCLUDED.transaction_id,
			quantity = EXCLUDED.quantity,
			notes = EXCLUDED.notes,
			ordered = EXCLUDED.ordered,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.ItemID,
		request.TransactionID,
		request.Quantity,
		request.Notes,
		request.Ordered,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save order request: %w", err)
	}

	return nil
}

func (r *OrderRequestRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM order_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.ErrOrderRequestNotFound
	}

	return nil
}
