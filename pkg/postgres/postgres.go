package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the tables at startup. Intentionally idempotent
// and unversioned; real migrations are out of scope. Statements run one
// at a time because pgx prepares single statements only.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS location (
	id BIGSERIAL PRIMARY KEY,
	location_type TEXT NOT NULL,
	address_line_1 TEXT NOT NULL,
	address_line_2 TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	zip_code TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, `
CREATE TABLE IF NOT EXISTS customer (
	id BIGSERIAL PRIMARY KEY,
	billing_location_id BIGINT NOT NULL REFERENCES location(id),
	email TEXT NOT NULL UNIQUE,
	phone_number TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, `
CREATE TABLE IF NOT EXISTS product (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL UNIQUE,
	price BIGINT NOT NULL CHECK (price >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, `
CREATE TABLE IF NOT EXISTS purchase_rollup (
	id BIGSERIAL PRIMARY KEY,
	customer_id BIGINT NOT NULL REFERENCES customer(id),
	total_cost BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, `
CREATE TABLE IF NOT EXISTS purchase_product (
	id BIGSERIAL PRIMARY KEY,
	product_id BIGINT NOT NULL REFERENCES product(id),
	shipping_location_id BIGINT NOT NULL REFERENCES location(id),
	purchase_rollup_id BIGINT NOT NULL REFERENCES purchase_rollup(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, `
CREATE TABLE IF NOT EXISTS outbox (
	id BIGSERIAL PRIMARY KEY,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	type TEXT NOT NULL,
	payload BYTEA NOT NULL,
	traceparent TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	relay_id TEXT,
	lease_until TIMESTAMPTZ,
	retry_count INT NOT NULL DEFAULT 0,
	last_error TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`,
}
