package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/basebackend-server/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

const itemColumns = `id, headline, description, price, creator_id, created_at, updated_at`

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	query := `INSERT INTO items (id, headline, description, price, creator_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRow(ctx, query,
		item.ID, item.Headline, item.Description, item.Price, item.CreatorID, item.CreatedAt, item.UpdatedAt,
	))
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	return saved, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	return item, nil
}

func (r *ItemRepository) GetByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE creator_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item model.Item) (model.Item, error) {
	query := `UPDATE items
			  SET headline = $2, description = $3, price = $4, updated_at = $5
			  WHERE id = $1
			  RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRow(ctx, query,
		item.ID, item.Headline, item.Description, item.Price, item.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	return saved, nil
}

func scanItem(row pgx.Row) (model.Item, error) {
	var item model.Item
	err := row.Scan(&item.ID, &item.Headline, &item.Description, &item.Price,
		&item.CreatorID, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}
