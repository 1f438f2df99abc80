package fulfillment

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

const fulfillmentColumns = `order_id, session_id, user_id::text, kind, item, amount, COALESCE(txn_ref, ''), status, COALESCE(detail, ''), created_at, updated_at`

func (r *postgresRepo) Claim(ctx context.Context, f domain.Fulfillment) (bool, *domain.Fulfillment, error) {
	const q = `
INSERT INTO fulfillments (order_id, session_id, user_id, kind, item, amount, txn_ref, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'awaiting')
ON CONFLICT (order_id) DO NOTHING
`
	cmd, err := r.pool.Exec(ctx, q, f.OrderID, f.SessionID, f.UserID, f.Kind, f.Item, f.Amount, f.TxnRef)
	if err != nil {
		return false, nil, err
	}
	if cmd.RowsAffected() == 1 {
		return true, nil, nil
	}
	existing, err := r.Get(ctx, f.OrderID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

func (r *postgresRepo) RecordOutcome(ctx context.Context, orderID string, status domain.FulfillmentStatus, detail string) error {
	const q = `
UPDATE fulfillments
SET status = $2, detail = $3, updated_at = now()
WHERE order_id = $1
`
	cmd, err := r.pool.Exec(ctx, q, orderID, status, detail)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, orderID string) (*domain.Fulfillment, error) {
	const q = `
SELECT ` + fulfillmentColumns + `
FROM fulfillments
WHERE order_id = $1
`
	return scanFulfillment(r.pool.QueryRow(ctx, q, orderID))
}

func (r *postgresRepo) ListProvisionFailed(ctx context.Context) ([]domain.Fulfillment, error) {
	const q = `
SELECT ` + fulfillmentColumns + `
FROM fulfillments
WHERE status = 'provision_failed'
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Fulfillment
	for rows.Next() {
		f, err := scanFulfillment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *f)
	}
	return result, rows.Err()
}

func scanFulfillment(row pgx.Row) (*domain.Fulfillment, error) {
	var f domain.Fulfillment
	err := row.Scan(&f.OrderID, &f.SessionID, &f.UserID, &f.Kind, &f.Item, &f.Amount, &f.TxnRef, &f.Status, &f.Detail, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
