package postgres

import (
	"context"
	"errors"
	"log/slog"

	catalogdomain "github.com/commercekit/purchase-service/internal/catalog/domain"
	customerdomain "github.com/commercekit/purchase-service/internal/customer/domain"
	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
	"github.com/commercekit/purchase-service/internal/purchase/application"
	"github.com/commercekit/purchase-service/internal/purchase/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewStore(log *slog.Logger, pool *pgxpool.Pool) *Store {
	return &Store{log: log, pool: pool}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx application.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, &txQueries{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) PurchaseByID(ctx context.Context, id int64) (domain.Purchase, error) {
	var p domain.Purchase
	err := s.pool.QueryRow(ctx,
		`SELECT id, customer_id, total_cost, created_at FROM purchase_rollup WHERE id=$1`, id).
		Scan(&p.ID, &p.CustomerID, &p.TotalCost, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Purchase{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Purchase{}, err
	}
	return p, nil
}

// txQueries implements application.Tx on top of a live pgx transaction.
type txQueries struct {
	tx pgx.Tx
}

func (q *txQueries) CustomerByID(ctx context.Context, id int64) (customerdomain.Customer, error) {
	var c customerdomain.Customer
	err := q.tx.QueryRow(ctx,
		`SELECT id, email, phone_number, first_name, last_name, billing_location_id, created_at
		 FROM customer WHERE id=$1`, id).
		Scan(&c.ID, &c.Email, &c.PhoneNumber, &c.FirstName, &c.LastName, &c.BillingLocationID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return customerdomain.Customer{}, domain.NotFoundError{Entity: "Customer", ID: id}
	}
	if err != nil {
		return customerdomain.Customer{}, err
	}
	return c, nil
}

func (q *txQueries) ProductByID(ctx context.Context, id int64) (catalogdomain.Product, error) {
	var p catalogdomain.Product
	err := q.tx.QueryRow(ctx,
		`SELECT id, name, description, price, created_at FROM product WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalogdomain.Product{}, domain.NotFoundError{Entity: "Product", ID: id}
	}
	if err != nil {
		return catalogdomain.Product{}, err
	}
	return p, nil
}

func (q *txQueries) LocationByID(ctx context.Context, id int64) (locdomain.Location, error) {
	var l locdomain.Location
	err := q.tx.QueryRow(ctx,
		`SELECT id, location_type, address_line_1, address_line_2, city, state, zip_code, created_at
		 FROM location WHERE id=$1`, id).
		Scan(&l.ID, &l.Type, &l.AddressLine1, &l.AddressLine2, &l.City, &l.State, &l.ZipCode, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return locdomain.Location{}, domain.NotFoundError{Entity: "Location", ID: id}
	}
	if err != nil {
		return locdomain.Location{}, err
	}
	return l, nil
}

func (q *txQueries) InsertLocation(ctx context.Context, loc locdomain.Location) (int64, error) {
	var id int64
	err := q.tx.QueryRow(ctx,
		`INSERT INTO location (location_type, address_line_1, address_line_2, city, state, zip_code)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		loc.Type, loc.AddressLine1, loc.AddressLine2, loc.City, loc.State, loc.ZipCode).
		Scan(&id)
	return id, err
}

func (q *txQueries) InsertPurchase(ctx context.Context, customerID, totalCost int64) (domain.Purchase, error) {
	var p domain.Purchase
	err := q.tx.QueryRow(ctx,
		`INSERT INTO purchase_rollup (customer_id, total_cost)
		 VALUES ($1,$2) RETURNING id, customer_id, total_cost, created_at`,
		customerID, totalCost).
		Scan(&p.ID, &p.CustomerID, &p.TotalCost, &p.CreatedAt)
	return p, err
}

func (q *txQueries) InsertLineItem(ctx context.Context, item domain.LineItem) error {
	_, err := q.tx.Exec(ctx,
		`INSERT INTO purchase_product (product_id, shipping_location_id, purchase_rollup_id)
		 VALUES ($1,$2,$3)`,
		item.ProductID, item.ShippingLocationID, item.PurchaseID)
	return err
}

func (q *txQueries) EnqueueEvent(ctx context.Context, eventType, aggregateID string, payload []byte, traceparent string) error {
	_, err := q.tx.Exec(ctx,
		`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		 VALUES ($1,$2,$3,$4,$5,'pending')`,
		"purchase", aggregateID, eventType, payload, traceparent)
	return err
}
