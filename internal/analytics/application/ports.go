package application

import "context"

// ZipOrderCount is one bucket of the zip-code aggregations.
type ZipOrderCount struct {
	ZipCode    string `json:"zip_code"`
	OrderCount int64  `json:"order_count"`
}

// HourlyPurchaseCount buckets store-pickup line items by hour of day.
type HourlyPurchaseCount struct {
	Hour          int   `json:"hour"`
	PurchaseCount int64 `json:"purchase_count"`
}

type StorePickupCustomer struct {
	CustomerID      int64  `json:"customer_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	StoreOrderCount int64  `json:"store_order_count"`
}

// Repository runs the aggregate queries. All four return empty slices,
// never errors, when no matching data exists.
type Repository interface {
	OrderCountByBillingZip(ctx context.Context, ascending bool) ([]ZipOrderCount, error)
	OrderCountByShippingZip(ctx context.Context, ascending bool) ([]ZipOrderCount, error)
	StorePurchaseTimes(ctx context.Context) ([]HourlyPurchaseCount, error)
	TopStorePickupCustomers(ctx context.Context, limit int) ([]StorePickupCustomer, error)
}
