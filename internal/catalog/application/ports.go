package application

import (
	"context"

	"github.com/commercekit/purchase-service/internal/catalog/domain"
)

// Repository implementations return domain.ErrNotFound when no row
// matches a lookup.
type Repository interface {
	Create(ctx context.Context, p domain.NewProduct) (domain.Product, error)
	ByID(ctx context.Context, id int64) (domain.Product, error)
	ByName(ctx context.Context, name string) (domain.Product, error)
}
