package promo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"domainhost/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const promoColumns = `id::text, title, message, COALESCE(link, '#'), is_active, created_at`

func (r *postgresRepo) Create(ctx context.Context, p domain.Promo) (*domain.Promo, error) {
	const q = `
INSERT INTO promos (title, message, link, is_active)
VALUES ($1, $2, $3, $4)
RETURNING ` + promoColumns
	return scanPromo(r.pool.QueryRow(ctx, q, p.Title, p.Message, p.Link, p.IsActive))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Promo, error) {
	const q = `
SELECT ` + promoColumns + `
FROM promos
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Promo
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) LatestActive(ctx context.Context) (*domain.Promo, error) {
	const q = `
SELECT ` + promoColumns + `
FROM promos
WHERE is_active
ORDER BY created_at DESC
LIMIT 1
`
	return scanPromo(r.pool.QueryRow(ctx, q))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM promos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPromo(row pgx.Row) (*domain.Promo, error) {
	var p domain.Promo
	err := row.Scan(&p.ID, &p.Title, &p.Message, &p.Link, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
