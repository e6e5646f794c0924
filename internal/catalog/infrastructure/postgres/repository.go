package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/commercekit/purchase-service/internal/catalog/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Create(ctx context.Context, p domain.NewProduct) (domain.Product, error) {
	var created domain.Product
	err := r.pool.QueryRow(ctx,
		`INSERT INTO product (name, description, price)
		 VALUES ($1,$2,$3) RETURNING id, name, description, price, created_at`,
		p.Name, p.Description, p.Price).
		Scan(&created.ID, &created.Name, &created.Description, &created.Price, &created.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

func (r *Repository) ByID(ctx context.Context, id int64) (domain.Product, error) {
	return r.one(ctx, `WHERE id=$1`, id)
}

func (r *Repository) ByName(ctx context.Context, name string) (domain.Product, error) {
	return r.one(ctx, `WHERE name=$1`, name)
}

func (r *Repository) one(ctx context.Context, where string, arg any) (domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, price, created_at FROM product `+where, arg).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
