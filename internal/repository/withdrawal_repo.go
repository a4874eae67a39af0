package repository

import (
	"context"

	"earnfast/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalRepository struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

const withdrawalColumns = `id, user_id, user_name, amount, method, details,
	status, refund_processed, created_at, processed_at`

// GetByID retrieves a single withdrawal request.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	return scanWithdrawal(row)
}

// GetByUserID retrieves a user's withdrawal history, newest first.
func (r *WithdrawalRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Withdrawal, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+withdrawalColumns+`
		 FROM withdrawals
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWithdrawals(rows)
}

// GetByStatus retrieves withdrawals in a given status, oldest first.
func (r *WithdrawalRepository) GetByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+withdrawalColumns+`
		 FROM withdrawals
		 WHERE status = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		status, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWithdrawals(rows)
}

// CreateWithTx inserts a pending request inside an existing transaction
// so the debit and the request commit together.
func (r *WithdrawalRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	return tx.QueryRow(ctx,
		`INSERT INTO withdrawals (user_id, user_name, amount, method, details, status, refund_processed)
		 VALUES ($1, $2, $3, $4, $5, 'pending', false)
		 RETURNING id, status, created_at`,
		w.UserID, w.UserName, w.Amount, w.Method, w.Details,
	).Scan(&w.ID, &w.Status, &w.CreatedAt)
}

// MarkPaid transitions pending -> paid. Returns pgx.ErrNoRows when the
// request is missing or not pending.
func (r *WithdrawalRepository) MarkPaid(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE withdrawals SET status = 'paid', processed_at = NOW()
		 WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// MarkRejected transitions pending -> rejected. Returns pgx.ErrNoRows
// when the request is missing or not pending. The refund itself is
// handled by the ledger.
func (r *WithdrawalRepository) MarkRejected(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE withdrawals SET status = 'rejected', processed_at = NOW()
		 WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := row.Scan(
		&w.ID, &w.UserID, &w.UserName, &w.Amount, &w.Method, &w.Details,
		&w.Status, &w.RefundProcessed, &w.CreatedAt, &w.ProcessedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanWithdrawals(rows pgx.Rows) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.UserName, &w.Amount, &w.Method, &w.Details,
			&w.Status, &w.RefundProcessed, &w.CreatedAt, &w.ProcessedAt,
		); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}
