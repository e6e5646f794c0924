package application

import (
	"context"
	"log/slog"

	"github.com/commercekit/purchase-service/internal/catalog/domain"
)

type Service struct {
	log  *slog.Logger
	repo Repository
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) Create(ctx context.Context, p domain.NewProduct) (domain.Product, error) {
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.log.Info("product created", "product_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) ByID(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.ByID(ctx, id)
}

func (s *Service) ByName(ctx context.Context, name string) (domain.Product, error) {
	return s.repo.ByName(ctx, name)
}
