package postgres

import (
	"context"
	"log/slog"

	"github.com/commercekit/purchase-service/internal/analytics/application"
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

func direction(ascending bool) string {
	if ascending {
		return "ASC"
	}
	return "DESC"
}

func (r *Repository) OrderCountByBillingZip(ctx context.Context, ascending bool) ([]application.ZipOrderCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.zip_code, COUNT(pr.id) AS order_count
		FROM location l
		JOIN customer c ON c.billing_location_id = l.id
		JOIN purchase_rollup pr ON pr.customer_id = c.id
		GROUP BY l.zip_code
		ORDER BY COUNT(pr.id) `+direction(ascending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanZipCounts(rows)
}

// OrderCountByShippingZip counts distinct rollups per destination zip.
// Every location type referenced as a shipping destination participates,
// store pickups included.
func (r *Repository) OrderCountByShippingZip(ctx context.Context, ascending bool) ([]application.ZipOrderCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.zip_code, COUNT(DISTINCT pr.id) AS order_count
		FROM location l
		JOIN purchase_product pp ON pp.shipping_location_id = l.id
		JOIN purchase_rollup pr ON pr.id = pp.purchase_rollup_id
		GROUP BY l.zip_code
		ORDER BY COUNT(DISTINCT pr.id) `+direction(ascending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanZipCounts(rows)
}

func (r *Repository) StorePurchaseTimes(ctx context.Context) ([]application.HourlyPurchaseCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(HOUR FROM pp.created_at)::int AS hour, COUNT(pp.id) AS purchase_count
		FROM purchase_product pp
		JOIN location l ON l.id = pp.shipping_location_id
		WHERE l.location_type = 'store'
		GROUP BY EXTRACT(HOUR FROM pp.created_at)
		ORDER BY COUNT(pp.id) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []application.HourlyPurchaseCount{}
	for rows.Next() {
		var h application.HourlyPurchaseCount
		if err := rows.Scan(&h.Hour, &h.PurchaseCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repository) TopStorePickupCustomers(ctx context.Context, limit int) ([]application.StorePickupCustomer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name, c.email, COUNT(DISTINCT pr.id) AS store_order_count
		FROM customer c
		JOIN purchase_rollup pr ON pr.customer_id = c.id
		JOIN purchase_product pp ON pp.purchase_rollup_id = pr.id
		JOIN location l ON l.id = pp.shipping_location_id
		WHERE l.location_type = 'store'
		GROUP BY c.id, c.first_name, c.last_name, c.email
		ORDER BY COUNT(DISTINCT pr.id) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []application.StorePickupCustomer{}
	for rows.Next() {
		var c application.StorePickupCustomer
		if err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.StoreOrderCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanZipCounts(rows pgx.Rows) ([]application.ZipOrderCount, error) {
	out := []application.ZipOrderCount{}
	for rows.Next() {
		var z application.ZipOrderCount
		if err := rows.Scan(&z.ZipCode, &z.OrderCount); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}
