package repository

import (
	"context"

	"earnfast/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EarningRepository struct {
	db *pgxpool.Pool
}

func NewEarningRepository(db *pgxpool.Pool) *EarningRepository {
	return &EarningRepository{db: db}
}

// CreateWithTx appends an earning record inside an existing transaction
// so the audit entry commits together with the balance change.
func (r *EarningRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, e *domain.Earning) error {
	return tx.QueryRow(ctx,
		`INSERT INTO earnings (user_id, amount, source)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.UserID, e.Amount, e.Source,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByUserID returns recent earnings for a user, newest first.
func (r *EarningRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Earning, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, source, created_at
		 FROM earnings
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earnings []domain.Earning
	for rows.Next() {
		var e domain.Earning
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Source, &e.CreatedAt); err != nil {
			return nil, err
		}
		earnings = append(earnings, e)
	}
	return earnings, rows.Err()
}
