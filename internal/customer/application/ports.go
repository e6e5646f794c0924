package application

import (
	"context"

	"github.com/commercekit/purchase-service/internal/customer/domain"
)

// Repository implementations return domain.ErrNotFound when no row
// matches a lookup. Register must create the billing location and the
// customer within one transaction.
type Repository interface {
	Register(ctx context.Context, c domain.NewCustomer) (domain.Customer, error)
	ByPhone(ctx context.Context, phoneNumber string) (domain.Customer, error)
	ByEmail(ctx context.Context, email string) (domain.Customer, error)
}
