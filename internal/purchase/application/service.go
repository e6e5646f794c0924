package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	customerdomain "github.com/commercekit/purchase-service/internal/customer/domain"
	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
	"github.com/commercekit/purchase-service/internal/purchase/domain"
)

const eventTypePurchaseCreated = "PurchaseCreated"

type Service struct {
	log   *slog.Logger
	store Store
}

func NewService(log *slog.Logger, store Store) *Service {
	return &Service{log: log, store: store}
}

// Create validates the customer and every line item, resolves a shipping
// destination per item, and materializes the rollup plus its line items
// as one atomic unit. On any failure nothing from the invocation
// persists, including shipping locations created along the way.
func (s *Service) Create(ctx context.Context, np domain.NewPurchase, traceparent string) (domain.Purchase, error) {
	var created domain.Purchase
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		customer, err := tx.CustomerByID(ctx, np.CustomerID)
		if err != nil {
			return err
		}

		var totalCost int64
		resolved := make([]domain.PurchasedItem, 0, len(np.Items))
		for _, item := range np.Items {
			product, err := tx.ProductByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			locationID, err := s.resolveShipping(ctx, tx, item.Shipping, customer)
			if err != nil {
				return err
			}
			totalCost += product.Price
			resolved = append(resolved, domain.PurchasedItem{
				ProductID:          item.ProductID,
				ShippingLocationID: locationID,
			})
		}

		created, err = tx.InsertPurchase(ctx, np.CustomerID, totalCost)
		if err != nil {
			return err
		}
		for _, item := range resolved {
			err := tx.InsertLineItem(ctx, domain.LineItem{
				PurchaseID:         created.ID,
				ProductID:          item.ProductID,
				ShippingLocationID: item.ShippingLocationID,
			})
			if err != nil {
				return err
			}
		}

		event := domain.PurchaseCreated{
			PurchaseID: created.ID,
			CustomerID: created.CustomerID,
			TotalCost:  created.TotalCost,
			Items:      resolved,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return tx.EnqueueEvent(ctx, eventTypePurchaseCreated, strconv.FormatInt(created.ID, 10), payload, traceparent)
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	s.log.Info("purchase created", "purchase_id", created.ID, "customer_id", created.CustomerID, "total_cost", created.TotalCost)
	return created, nil
}

// resolveShipping maps a directive to a concrete location id. A new
// shipping location stays pending inside the transaction until commit.
func (s *Service) resolveShipping(ctx context.Context, tx Tx, d domain.ShippingDirective, customer customerdomain.Customer) (int64, error) {
	switch d.Kind {
	case domain.ShipToBillingAddress:
		return customer.BillingLocationID, nil
	case domain.ShipToExistingLocation:
		if _, err := tx.LocationByID(ctx, d.LocationID); err != nil {
			return 0, err
		}
		return d.LocationID, nil
	case domain.ShipToNewAddress:
		return tx.InsertLocation(ctx, d.Address.AsLocation(locdomain.TypeShipping))
	default:
		return 0, domain.ErrNoShippingOption
	}
}

func (s *Service) ByID(ctx context.Context, id int64) (domain.Purchase, error) {
	return s.store.PurchaseByID(ctx, id)
}
