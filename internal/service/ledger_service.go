package service

import (
	"context"
	"errors"
	"strings"

	"earnfast/internal/domain"
	"earnfast/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBelowMinimum      = errors.New("amount below minimum withdrawal")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingDetails    = errors.New("payment details required")
	ErrNotRejected       = errors.New("withdrawal is not rejected")
)

// LedgerService owns every balance mutation. Each operation is a single
// database transaction: the profile row is locked, the new balance and
// lifetime totals are computed from the locked values, and any audit or
// withdrawal row commits together with the balance change.
type LedgerService struct {
	db             *pgxpool.Pool
	earningRepo    *repository.EarningRepository
	withdrawalRepo *repository.WithdrawalRepository
}

func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{
		db:             db,
		earningRepo:    repository.NewEarningRepository(db),
		withdrawalRepo: repository.NewWithdrawalRepository(db),
	}
}

// CreditGameWin adds a game reward to balance and total_earned and
// appends the earning record in the same transaction.
func (s *LedgerService) CreditGameWin(ctx context.Context, userID int64, amount int64, source string) (newBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1, total_earned = total_earned + $1
		 WHERE id = $2
		 RETURNING balance`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	earning := &domain.Earning{
		UserID: userID,
		Amount: amount,
		Source: source,
	}
	if earning.Source == "" {
		earning.Source = "Game Win"
	}
	if err = s.earningRepo.CreateWithTx(ctx, tx, earning); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// DebitWithdrawal checks sufficiency against the locked balance, debits
// it and inserts the pending withdrawal request, all in one transaction.
func (s *LedgerService) DebitWithdrawal(ctx context.Context, userID int64, amount int64, method, details string, minWithdraw int64) (*domain.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < minWithdraw {
		return nil, ErrBelowMinimum
	}
	if strings.TrimSpace(method) == "" || strings.TrimSpace(details) == "" {
		return nil, ErrMissingDetails
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock and check balance. The sufficiency check lives inside the
	// transaction so a stale client view can never overdraw.
	var (
		balance   int64
		firstName string
	)
	err = tx.QueryRow(ctx,
		`SELECT balance, COALESCE(first_name, '') FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&balance, &firstName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if balance < amount {
		return nil, ErrInsufficientFunds
	}

	if _, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance - $1 WHERE id = $2`,
		amount, userID,
	); err != nil {
		return nil, err
	}

	w := &domain.Withdrawal{
		UserID:   userID,
		UserName: firstName,
		Amount:   amount,
		Method:   strings.TrimSpace(method),
		Details:  strings.TrimSpace(details),
	}
	if err = s.withdrawalRepo.CreateWithTx(ctx, tx, w); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// RefundWithdrawal credits a rejected request back to the user exactly
// once. The refund_processed flag is read and set under the same row
// lock as the balance credit, so concurrent invocations no-op.
func (s *LedgerService) RefundWithdrawal(ctx context.Context, withdrawalID int64) (refunded bool, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		userID          int64
		amount          int64
		status          domain.WithdrawalStatus
		refundProcessed bool
	)
	err = tx.QueryRow(ctx,
		`SELECT user_id, amount, status, refund_processed
		 FROM withdrawals WHERE id = $1 FOR UPDATE`,
		withdrawalID,
	).Scan(&userID, &amount, &status, &refundProcessed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, pgx.ErrNoRows
		}
		return false, err
	}

	if refundProcessed {
		return false, nil // idempotent guard
	}
	if status != domain.WithdrawalStatusRejected {
		return false, ErrNotRejected
	}

	if _, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`,
		amount, userID,
	); err != nil {
		return false, err
	}

	if _, err = tx.Exec(ctx,
		`UPDATE withdrawals SET refund_processed = true WHERE id = $1`,
		withdrawalID,
	); err != nil {
		return false, err
	}

	if err = tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// CreditWithTx adds amount to balance and total_earned within an
// existing transaction. Used by the referral flow.
func (s *LedgerService) CreditWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount int64) (newBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1, total_earned = total_earned + $1
		 WHERE id = $2
		 RETURNING balance`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return newBalance, nil
}
