package voucher

import (
	"context"
	"errors"
	"strings"
	"time"

	"domainhost/internal/domain"
)

// Service validates voucher codes against orders and backs the admin CRUD.
type Service struct {
	repo voucherRepo
}

type voucherRepo interface {
	Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error)
	List(ctx context.Context) ([]domain.Voucher, error)
	GetActiveByCode(ctx context.Context, code string) (*domain.Voucher, error)
	LatestActive(ctx context.Context) (*domain.Voucher, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

func New(repo voucherRepo) *Service {
	return &Service{repo: repo}
}

// Validate checks a code against the order's plan. Checks run in a fixed
// order so the first failing one wins: NotFound, then Expired, then
// NotApplicable. A rejection is returned as *domain.VoucherRejection.
func (s *Service) Validate(ctx context.Context, code, plan string, now time.Time) (*domain.Voucher, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, &domain.VoucherRejection{Code: code, Reason: domain.VoucherNotFound}
	}
	v, err := s.repo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.VoucherRejection{Code: code, Reason: domain.VoucherNotFound}
		}
		return nil, err
	}
	if now.After(v.ExpiryDate) {
		return nil, &domain.VoucherRejection{Code: code, Reason: domain.VoucherExpired}
	}
	if !v.AppliesTo(plan) {
		return nil, &domain.VoucherRejection{Code: code, Reason: domain.VoucherNotApplicable}
	}
	return v, nil
}

type CreateInput struct {
	Code            string   `json:"code"`
	DiscountPercent int      `json:"discountPercent"`
	ExpiryDate      string   `json:"expiryDate"`
	ApplicablePlans []string `json:"applicablePlans"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Voucher, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, errors.New("code required")
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 100 {
		return nil, errors.New("discount must be between 1 and 100")
	}
	expiry, err := time.Parse("2006-01-02", in.ExpiryDate)
	if err != nil {
		return nil, errors.New("expiry date must be YYYY-MM-DD")
	}
	plans := make([]string, 0, len(in.ApplicablePlans))
	for _, p := range in.ApplicablePlans {
		if p = strings.TrimSpace(p); p != "" {
			plans = append(plans, p)
		}
	}
	return s.repo.Create(ctx, domain.Voucher{
		Code:            code,
		DiscountPercent: in.DiscountPercent,
		ExpiryDate:      expiry.Add(24*time.Hour - time.Second),
		IsActive:        true,
		ApplicablePlans: plans,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Voucher, error) {
	return s.repo.List(ctx)
}

func (s *Service) LatestActive(ctx context.Context) (*domain.Voucher, error) {
	return s.repo.LatestActive(ctx)
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
