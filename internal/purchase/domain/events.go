package domain

type PurchaseCreated struct {
	PurchaseID int64           `json:"purchase_id"`
	CustomerID int64           `json:"customer_id"`
	TotalCost  int64           `json:"total_cost"`
	Items      []PurchasedItem `json:"items"`
}

type PurchasedItem struct {
	ProductID          int64 `json:"product_id"`
	ShippingLocationID int64 `json:"shipping_location_id"`
}
