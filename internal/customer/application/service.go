package application

import (
	"context"
	"log/slog"

	"github.com/commercekit/purchase-service/internal/customer/domain"
)

type Service struct {
	log  *slog.Logger
	repo Repository
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) Register(ctx context.Context, c domain.NewCustomer) (domain.Customer, error) {
	created, err := s.repo.Register(ctx, c)
	if err != nil {
		return domain.Customer{}, err
	}
	s.log.Info("customer registered", "customer_id", created.ID, "billing_location_id", created.BillingLocationID)
	return created, nil
}

func (s *Service) ByPhone(ctx context.Context, phoneNumber string) (domain.Customer, error) {
	return s.repo.ByPhone(ctx, phoneNumber)
}

func (s *Service) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return s.repo.ByEmail(ctx, email)
}
