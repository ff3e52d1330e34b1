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

// RepairRepository handles repairs-catalog database operations.
type RepairRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepairRepository(db *sql.DB, logger *slog.Logger) *RepairRepository {
	return &RepairRepository{db: db, logger: logger}
}

const repairColumns = "id, name, description, price, disabled, created_at, updated_at"

func scanRepair(row rowScanner) (*models.Repair, error) {
	var repair models.Repair

	err := row.Scan(
		&repair.ID,
		&repair.Name,
		&repair.Description,
		&repair.Price,
		&repair.Disabled,
		&repair.CreatedAt,
		&repair.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &repair, nil
}

func (r *RepairRepository) List(ctx context.Context) ([]*models.Repair, error) {
	query := "SELECT " + repairColumns + " FROM repairs ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repairs: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	repairs := make([]*models.Repair, 0)

	for rows.Next() {
		repair, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repair: %w", err)
		}

		repairs = append(repairs, repair)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating repairs: %w", err)
	}

	return repairs, nil
}

func (r *RepairRepository) GetByID(ctx context.Context, id string) (*models.Repair, error) {
	query := "SELECT " + repairColumns + " FROM repairs WHERE id = $1"

	repair, err := scanRepair(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan repair: %w", err)
	}

	return repair, nil
}

func (r *RepairRepository) Save(ctx context.Context, repair *models.Repair) error {
	query := `
		INSERT INTO repairs (id, name, description, price, disabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			disabled = EXCLUDED.disabled,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		repair.ID,
		repair.Name,
		repair.Description,
		repair.Price,
		repair.Disabled,
		repair.CreatedAt,
		repair.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save repair: %w", err)
	}

	return nil
}

func (r *RepairRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM repairs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete repair: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.ErrRepairNotFound
	}

	return nil
}
