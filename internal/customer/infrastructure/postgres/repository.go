package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/commercekit/purchase-service/internal/customer/domain"
	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
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

// Register persists the billing location first and the customer row
// referencing it, both in one transaction.
func (r *Repository) Register(ctx context.Context, c domain.NewCustomer) (domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Customer{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	loc := c.BillingAddress.AsLocation(locdomain.TypeBilling)
	var billingLocationID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO location (location_type, address_line_1, address_line_2, city, state, zip_code)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		loc.Type, loc.AddressLine1, loc.AddressLine2, loc.City, loc.State, loc.ZipCode).
		Scan(&billingLocationID)
	if err != nil {
		return domain.Customer{}, err
	}

	var created domain.Customer
	err = tx.QueryRow(ctx,
		`INSERT INTO customer (email, phone_number, first_name, last_name, billing_location_id)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING id, email, phone_number, first_name, last_name, billing_location_id, created_at`,
		c.Email, c.PhoneNumber, c.FirstName, c.LastName, billingLocationID).
		Scan(&created.ID, &created.Email, &created.PhoneNumber, &created.FirstName, &created.LastName, &created.BillingLocationID, &created.CreatedAt)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Customer{}, err
	}
	return created, nil
}

func (r *Repository) ByPhone(ctx context.Context, phoneNumber string) (domain.Customer, error) {
	return r.one(ctx, `WHERE phone_number=$1`, phoneNumber)
}

func (r *Repository) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return r.one(ctx, `WHERE email=$1`, email)
}

func (r *Repository) one(ctx context.Context, where string, arg any) (domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, phone_number, first_name, last_name, billing_location_id, created_at
		 FROM customer `+where, arg).
		Scan(&c.ID, &c.Email, &c.PhoneNumber, &c.FirstName, &c.LastName, &c.BillingLocationID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}
