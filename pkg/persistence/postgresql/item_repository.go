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

// ItemRepository handles inventory item database operations.
type ItemRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewItemRepository(db *sql.DB, logger *slog.Logger) *ItemRepository {
	return &ItemRepository{db: db, logger: logger}
}

const itemColumns = `
		id
	  , upc
	  , name
	  , brand
	  , category
	  , standard_price
	  , wholesale_cost
	  , stock
	  , minimum_stock
	  , managed
	  , created_at
	  , updated_at
`

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item

	err := row.Scan(
		&item.ID,
		&item.UPC,
		&item.Name,
		&item.Brand,
		&item.Category,
		&item.StandardPrice,
		&item.WholesaleCost,
		&item.Stock,
		&item.MinimumStock,
		&item.Managed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	items := make([]*models.Item, 0)

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE id = $1"

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	return item, nil
}

// GetByUPC looks up an item by its UPC, the key used when reconciling vendor
// catalogs against inventory.
func (r *ItemRepository) GetByUPC(ctx context.Context, upc string) (*models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE upc = $1"

	item, err := scanItem(r.db.QueryRowContext(ctx, query, upc))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	return item, nil
}

func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, upc, name, brand, category, standard_price,
			wholesale_cost, stock, minimum_stock, managed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			upc = EXCLUDED.upc,
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			standard_price = EXCLUDED.standard_price,
			wholesale_cost = EXCLUDED.wholesale_cost,
			stock = EXCLUDED.stock,
			minimum_stock = EXCLUDED.minimum_stock,
			managed = EXCLUDED.managed,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.UPC,
		item.Name,
		item.Brand,
		item.Category,
		item.StandardPrice,
		item.WholesaleCost,
		item.Stock,
		item.MinimumStock,
		item.Managed,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.ErrItemNotFound
	}

	return nil
}
