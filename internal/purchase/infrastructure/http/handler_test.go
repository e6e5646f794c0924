package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalogdomain "github.com/commercekit/purchase-service/internal/catalog/domain"
	customerdomain "github.com/commercekit/purchase-service/internal/customer/domain"
	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
	"github.com/commercekit/purchase-service/internal/purchase/application"
	"github.com/commercekit/purchase-service/internal/purchase/domain"
	"github.com/stretchr/testify/require"
)

// stubStore serves one customer (id 1, billing location 10) and one
// product (id 2, price 1000); writes are kept only on success.
type stubStore struct {
	purchases []domain.Purchase
	lines     []domain.LineItem
	nextID    int64
}

func (s *stubStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx application.Tx) error) error {
	staged := &stubTx{store: &stubStore{nextID: s.nextID, purchases: append([]domain.Purchase(nil), s.purchases...), lines: append([]domain.LineItem(nil), s.lines...)}}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	*s = *staged.store
	return nil
}

func (s *stubStore) PurchaseByID(_ context.Context, id int64) (domain.Purchase, error) {
	for _, p := range s.purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Purchase{}, domain.ErrNotFound
}

type stubTx struct {
	store *stubStore
}

func (t *stubTx) CustomerByID(_ context.Context, id int64) (customerdomain.Customer, error) {
	if id != 1 {
		return customerdomain.Customer{}, domain.NotFoundError{Entity: "Customer", ID: id}
	}
	return customerdomain.Customer{ID: 1, BillingLocationID: 10}, nil
}

func (t *stubTx) ProductByID(_ context.Context, id int64) (catalogdomain.Product, error) {
	if id != 2 {
		return catalogdomain.Product{}, domain.NotFoundError{Entity: "Product", ID: id}
	}
	return catalogdomain.Product{ID: 2, Price: 1000}, nil
}

func (t *stubTx) LocationByID(_ context.Context, id int64) (locdomain.Location, error) {
	if id != 10 {
		return locdomain.Location{}, domain.NotFoundError{Entity: "Location", ID: id}
	}
	return locdomain.Location{ID: 10, Type: locdomain.TypeBilling}, nil
}

func (t *stubTx) InsertLocation(_ context.Context, loc locdomain.Location) (int64, error) {
	t.store.nextID++
	return t.store.nextID, nil
}

func (t *stubTx) InsertPurchase(_ context.Context, customerID, totalCost int64) (domain.Purchase, error) {
	t.store.nextID++
	p := domain.Purchase{ID: t.store.nextID, CustomerID: customerID, TotalCost: totalCost, CreatedAt: time.Now().UTC()}
	t.store.purchases = append(t.store.purchases, p)
	return p, nil
}

func (t *stubTx) InsertLineItem(_ context.Context, item domain.LineItem) error {
	t.store.lines = append(t.store.lines, item)
	return nil
}

func (t *stubTx) EnqueueEvent(context.Context, string, string, []byte, string) error {
	return nil
}

func newTestHandler(store *stubStore) http.Handler {
	log := slog.New(slog.DiscardHandler)
	return NewHandler(log, application.NewService(log, store)).Routes()
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreatePurchaseSuccess(t *testing.T) {
	store := &stubStore{nextID: 100}
	rec := post(t, newTestHandler(store), `{
		"customer_id": 1,
		"products": [{"product_id": 2, "ship_to_billing_address": true}]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID         int64 `json:"id"`
		CustomerID int64 `json:"customer_id"`
		TotalCost  int64 `json:"total_cost"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.CustomerID)
	require.Equal(t, int64(1000), resp.TotalCost)

	require.Len(t, store.lines, 1)
	require.Equal(t, int64(10), store.lines[0].ShippingLocationID)
}

func TestCreatePurchaseNoShippingOption(t *testing.T) {
	rec := post(t, newTestHandler(&stubStore{}), `{
		"customer_id": 1,
		"products": [{"product_id": 2}]
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "At least one shipping option")
}

func TestCreatePurchaseConflictingShippingOptions(t *testing.T) {
	rec := post(t, newTestHandler(&stubStore{}), `{
		"customer_id": 1,
		"products": [{"product_id": 2, "ship_to_billing_address": true, "shipping_location_id": 10}]
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Only one shipping option")
}

func TestCreatePurchaseUnknownCustomer(t *testing.T) {
	store := &stubStore{}
	rec := post(t, newTestHandler(store), `{
		"customer_id": 42,
		"products": [{"product_id": 2, "ship_to_billing_address": true}]
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Customer with id 42 not found")
	require.Empty(t, store.purchases)
}

func TestCreatePurchaseUnknownProduct(t *testing.T) {
	rec := post(t, newTestHandler(&stubStore{}), `{
		"customer_id": 1,
		"products": [{"product_id": 9, "ship_to_billing_address": true}]
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Product with id 9 not found")
}

func TestGetPurchase(t *testing.T) {
	store := &stubStore{purchases: []domain.Purchase{{ID: 7, CustomerID: 1, TotalCost: 1500}}}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/7", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"total_cost":1500`)

	req = httptest.NewRequest(http.MethodGet, "/8", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Purchase not found")
}
