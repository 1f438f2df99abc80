package voucher

import (
	"context"

	"domainhost/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error)
	List(ctx context.Context) ([]domain.Voucher, error)
	// GetActiveByCode matches case-insensitively against active vouchers.
	GetActiveByCode(ctx context.Context, code string) (*domain.Voucher, error)
	// LatestActive backs the landing page highlight.
	LatestActive(ctx context.Context) (*domain.Voucher, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
