package application

import (
	"context"

	catalogdomain "github.com/commercekit/purchase-service/internal/catalog/domain"
	customerdomain "github.com/commercekit/purchase-service/internal/customer/domain"
	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
	"github.com/commercekit/purchase-service/internal/purchase/domain"
)

// Tx is the transaction handle the orchestrator works against. Every
// write issued through it is discarded if the enclosing WithinTx
// callback returns an error. Lookup methods return domain.NotFoundError
// for missing rows so the message can surface to the client as-is.
type Tx interface {
	CustomerByID(ctx context.Context, id int64) (customerdomain.Customer, error)
	ProductByID(ctx context.Context, id int64) (catalogdomain.Product, error)
	LocationByID(ctx context.Context, id int64) (locdomain.Location, error)
	InsertLocation(ctx context.Context, loc locdomain.Location) (int64, error)
	InsertPurchase(ctx context.Context, customerID, totalCost int64) (domain.Purchase, error)
	InsertLineItem(ctx context.Context, item domain.LineItem) error
	EnqueueEvent(ctx context.Context, eventType, aggregateID string, payload []byte, traceparent string) error
}

type Store interface {
	// WithinTx begins a transaction, runs fn, and commits only if fn
	// returns nil. Rollback is guaranteed on every other exit path.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// PurchaseByID reads outside any transaction; returns
	// domain.ErrNotFound on a miss.
	PurchaseByID(ctx context.Context, id int64) (domain.Purchase, error)
}
