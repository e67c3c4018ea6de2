package settings

import (
	"context"
)

type Service interface {
	Get(ctx context.Context) (*PriceSetting, error)
	Update(ctx context.Context, baseAmount float64) (*PriceSetting, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context) (*PriceSetting, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, baseAmount float64) (*PriceSetting, error) {
	if baseAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.repo.Update(ctx, baseAmount)
}
