package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// AuthorRepository defines read access to book authors. Authors are seeded
// out-of-band; the API never writes them.
type AuthorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type authorRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorRepository returns a Postgres-backed implementation.
func NewAuthorRepository(pool *pgxpool.Pool) AuthorRepository {
	return &authorRepository{pool: pool}
}

func (r *authorRepository) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	const query = `SELECT id, name, created_at FROM authors WHERE id=$1`

	var author domain.Author
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&author.ID,
		&author.Name,
		&author.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM authors WHERE id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
