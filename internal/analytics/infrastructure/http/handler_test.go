package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/commercekit/purchase-service/internal/analytics/application"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	billingAscending  *bool
	shippingAscending *bool
	limit             int
}

func (f *fakeRepo) OrderCountByBillingZip(_ context.Context, ascending bool) ([]application.ZipOrderCount, error) {
	f.billingAscending = &ascending
	out := []application.ZipOrderCount{{ZipCode: "12345", OrderCount: 4}, {ZipCode: "54321", OrderCount: 1}}
	if ascending {
		out[0], out[1] = out[1], out[0]
	}
	return out, nil
}

func (f *fakeRepo) OrderCountByShippingZip(_ context.Context, ascending bool) ([]application.ZipOrderCount, error) {
	f.shippingAscending = &ascending
	return []application.ZipOrderCount{}, nil
}

func (f *fakeRepo) StorePurchaseTimes(context.Context) ([]application.HourlyPurchaseCount, error) {
	return []application.HourlyPurchaseCount{{Hour: 14, PurchaseCount: 3}, {Hour: 9, PurchaseCount: 1}}, nil
}

func (f *fakeRepo) TopStorePickupCustomers(_ context.Context, limit int) ([]application.StorePickupCustomer, error) {
	f.limit = limit
	return []application.StorePickupCustomer{
		{CustomerID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", StoreOrderCount: 3},
	}, nil
}

func get(t *testing.T, repo *fakeRepo, path string) *httptest.ResponseRecorder {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	h := NewHandler(log, application.NewService(log, repo)).Routes()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOrdersByBillingZipDefaultsDescending(t *testing.T) {
	repo := &fakeRepo{}
	rec := get(t, repo, "/orders-by-billing-zip")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.billingAscending)
	require.False(t, *repo.billingAscending)

	var out []application.ZipOrderCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, []application.ZipOrderCount{{ZipCode: "12345", OrderCount: 4}, {ZipCode: "54321", OrderCount: 1}}, out)
}

func TestOrdersByBillingZipAscending(t *testing.T) {
	repo := &fakeRepo{}
	rec := get(t, repo, "/orders-by-billing-zip?ascending=true")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *repo.billingAscending)

	var out []application.ZipOrderCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "54321", out[0].ZipCode)
}

func TestOrdersByShippingZipEmpty(t *testing.T) {
	repo := &fakeRepo{}
	rec := get(t, repo, "/orders-by-shipping-zip")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
	require.False(t, *repo.shippingAscending)
}

func TestStorePurchaseTimes(t *testing.T) {
	rec := get(t, &fakeRepo{}, "/store-purchase-times")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"hour":14,"purchase_count":3},{"hour":9,"purchase_count":1}]`, rec.Body.String())
}

func TestTopStorePickupUsers(t *testing.T) {
	repo := &fakeRepo{}
	rec := get(t, repo, "/top-store-pickup-users")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, repo.limit)
	require.JSONEq(t, `[{"customer_id":1,"first_name":"Jane","last_name":"Doe","email":"jane@example.com","store_order_count":3}]`, rec.Body.String())
}
