package application

import (
	"context"
	"log/slog"
)

// topStorePickupLimit caps the top-customers ranking; ties past the
// cutoff are dropped arbitrarily.
const topStorePickupLimit = 5

type Service struct {
	log  *slog.Logger
	repo Repository
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) OrderCountByBillingZip(ctx context.Context, ascending bool) ([]ZipOrderCount, error) {
	return s.repo.OrderCountByBillingZip(ctx, ascending)
}

// OrderCountByShippingZip counts distinct rollups per destination zip.
// Destinations of every location type participate, store pickups
// included.
func (s *Service) OrderCountByShippingZip(ctx context.Context, ascending bool) ([]ZipOrderCount, error) {
	return s.repo.OrderCountByShippingZip(ctx, ascending)
}

func (s *Service) StorePurchaseTimes(ctx context.Context) ([]HourlyPurchaseCount, error) {
	return s.repo.StorePurchaseTimes(ctx)
}

func (s *Service) TopStorePickupCustomers(ctx context.Context) ([]StorePickupCustomer, error) {
	return s.repo.TopStorePickupCustomers(ctx, topStorePickupLimit)
}
