package voucher

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"domainhost/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const voucherColumns = `id::text, code, discount_percent, expiry_date, is_active, applicable_plans, created_at`

func (r *postgresRepo) Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error) {
	const q = `
INSERT INTO vouchers (code, discount_percent, expiry_date, is_active, applicable_plans)
VALUES (upper($1), $2, $3, $4, $5)
RETURNING ` + voucherColumns
	row := r.pool.QueryRow(ctx, q, strings.TrimSpace(v.Code), v.DiscountPercent, v.ExpiryDate, v.IsActive, v.ApplicablePlans)
	return scanVoucher(row)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Voucher, error) {
	const q = `
SELECT ` + voucherColumns + `
FROM vouchers
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetActiveByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	const q = `
SELECT ` + voucherColumns + `
FROM vouchers
WHERE code = upper($1) AND is_active
LIMIT 1
`
	return scanVoucher(r.pool.QueryRow(ctx, q, strings.TrimSpace(code)))
}

func (r *postgresRepo) LatestActive(ctx context.Context) (*domain.Voucher, error) {
	const q = `
SELECT ` + voucherColumns + `
FROM vouchers
WHERE is_active
ORDER BY created_at DESC
LIMIT 1
`
	return scanVoucher(r.pool.QueryRow(ctx, q))
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE vouchers SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(&v.ID, &v.Code, &v.DiscountPercent, &v.ExpiryDate, &v.IsActive, &v.ApplicablePlans, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &v, nil
}
