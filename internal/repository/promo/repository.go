package promo

import (
	"context"

	"domainhost/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Promo) (*domain.Promo, error)
	List(ctx context.Context) ([]domain.Promo, error)
	LatestActive(ctx context.Context) (*domain.Promo, error)
	Delete(ctx context.Context, id string) error
}
