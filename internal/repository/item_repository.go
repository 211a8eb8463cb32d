package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ItemRepository defines persistence access for listed items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	GetActiveByID(ctx context.Context, id int64) (*domain.Item, error)
	OwnedBy(ctx context.Context, itemID, sellerID int64) (bool, error)
	ListActive(ctx context.Context) ([]domain.ItemDetails, error)
	Search(ctx context.Context, query string) ([]domain.ItemDetails, error)
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns a Postgres-backed implementation.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (title, description, seller_id, author_id, category_id, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.SellerID,
		item.AuthorID,
		item.CategoryID,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET title=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4`

	cmd, err := r.pool.Exec(ctx, query,
		item.Title,
		item.Description,
		item.ID,
		domain.ItemStatusActive,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *itemRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Item, error) {
	const query = `
        SELECT id, title, description, seller_id, author_id, category_id, status, created_at, updated_at
        FROM items WHERE id=$1 AND status=$2`

	var item domain.Item
	if err := r.pool.QueryRow(ctx, query, id, domain.ItemStatusActive).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.SellerID,
		&item.AuthorID,
		&item.CategoryID,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) OwnedBy(ctx context.Context, itemID, sellerID int64) (bool, error) {
	const query = `
        SELECT EXISTS (SELECT 1 FROM items WHERE id=$1 AND seller_id=$2 AND status=$3)`

	var owned bool
	if err := r.pool.QueryRow(ctx, query, itemID, sellerID, domain.ItemStatusActive).Scan(&owned); err != nil {
		return false, err
	}
	return owned, nil
}

const itemDetailsQuery = `
        SELECT i.id, i.title, i.description, i.seller_id, i.author_id, i.category_id,
               i.status, i.created_at, i.updated_at,
               a.name AS author_name, u.name AS seller_name, c.name AS category_name
        FROM items i
        JOIN authors a ON a.id = i.author_id
        JOIN users u ON u.id = i.seller_id
        JOIN categories c ON c.id = i.category_id
        WHERE i.status = $1`

func (r *itemRepository) ListActive(ctx context.Context) ([]domain.ItemDetails, error) {
	rows, err := r.pool.Query(ctx, itemDetailsQuery+` ORDER BY i.id ASC`, domain.ItemStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItemDetails(rows)
}

// Search matches the query case-insensitively against title and description.
func (r *itemRepository) Search(ctx context.Context, query string) ([]domain.ItemDetails, error) {
	const clause = ` AND (i.title ILIKE '%' || $2 || '%' OR i.description ILIKE '%' || $2 || '%')
        ORDER BY i.id ASC`

	rows, err := r.pool.Query(ctx, itemDetailsQuery+clause, domain.ItemStatusActive, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItemDetails(rows)
}

func scanItemDetails(rows pgx.Rows) ([]domain.ItemDetails, error) {
	var items []domain.ItemDetails
	for rows.Next() {
		var item domain.ItemDetails
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.SellerID,
			&item.AuthorID,
			&item.CategoryID,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.AuthorName,
			&item.SellerName,
			&item.CategoryName,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
