package domain

import (
	"time"

	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
)

// Purchase is the order rollup: one row per checkout, holding the sum of
// its line items' prices at creation time. It is written exactly once,
// atomically with its line items, and never mutated.
type Purchase struct {
	ID         int64
	CustomerID int64
	TotalCost  int64
	CreatedAt  time.Time
}

// LineItem is one product within a purchase, with its own resolved
// shipping destination. CreatedAt feeds the hour-of-day analytics.
type LineItem struct {
	ID                 int64
	PurchaseID         int64
	ProductID          int64
	ShippingLocationID int64
	CreatedAt          time.Time
}

type ShippingKind int

const (
	ShipUnspecified ShippingKind = iota
	ShipToBillingAddress
	ShipToExistingLocation
	ShipToNewAddress
)

// ShippingDirective is the per-line-item destination choice. Exactly one
// of the three forms applies; the request layer enforces cardinality and
// builds directives through the constructors below.
type ShippingDirective struct {
	Kind       ShippingKind
	LocationID int64
	Address    locdomain.Address
}

func ShipBilling() ShippingDirective {
	return ShippingDirective{Kind: ShipToBillingAddress}
}

func ShipExisting(locationID int64) ShippingDirective {
	return ShippingDirective{Kind: ShipToExistingLocation, LocationID: locationID}
}

func ShipNew(addr locdomain.Address) ShippingDirective {
	return ShippingDirective{Kind: ShipToNewAddress, Address: addr}
}

type PurchaseItem struct {
	ProductID int64
	Shipping  ShippingDirective
}

type NewPurchase struct {
	CustomerID int64
	Items      []PurchaseItem
}
