package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) Create(ctx context.Context, it *entity.InventoryItem) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (name, quantity, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, it.Name, it.Quantity, it.Price)

	return row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it := &entity.InventoryItem{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, quantity, price, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
	`, id)

	if err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *InventoryRepository) List(ctx context.Context) ([]entity.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, quantity, price, created_at, updated_at
		FROM inventory_items
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *InventoryRepository) Update(ctx context.Context, it *entity.InventoryItem) error {
	it.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE inventory_items
		SET name = $1, quantity = $2, price = $3, updated_at = $4
		WHERE id = $5
	`, it.Name, it.Quantity, it.Price, it.UpdatedAt, it.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)
