package service

import (
	"context"
	"errors"
	"time"

	"earnfast/internal/domain"
	"earnfast/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService provides platform statistics and withdrawal decisions.
type AdminService struct {
	db             *pgxpool.Pool
	withdrawalRepo *repository.WithdrawalRepository
	ledger         *LedgerService
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:             db,
		withdrawalRepo: repository.NewWithdrawalRepository(db),
		ledger:         NewLedgerService(db),
	}
}

// Stats represents platform statistics
type Stats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalBalance     int64 `json:"total_balance"` // coins in circulation
	TotalEarned      int64 `json:"total_earned"`
	EarningsToday    int64 `json:"earnings_today"`
	PendingWithdraws int64 `json:"pending_withdraws"`
	PendingAmount    int64 `json:"pending_amount"`
	TotalPaidOut     int64 `json:"total_paid_out"`
	TotalReferrals   int64 `json:"total_referrals"`
}

// GetStats returns platform statistics. Individual scans are
// best-effort so one failed aggregate does not hide the rest.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	today := time.Now().Truncate(24 * time.Hour)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)

	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM users`).Scan(&stats.TotalBalance)

	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_earned), 0) FROM users`).Scan(&stats.TotalEarned)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM earnings WHERE created_at >= $1
	`, today).Scan(&stats.EarningsToday)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'pending'
	`).Scan(&stats.PendingWithdraws, &stats.PendingAmount)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'paid'
	`).Scan(&stats.TotalPaidOut)

	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_refers), 0) FROM users`).Scan(&stats.TotalReferrals)

	return stats, nil
}

// PayWithdrawal marks a pending request as paid.
func (s *AdminService) PayWithdrawal(ctx context.Context, id int64) error {
	return s.withdrawalRepo.MarkPaid(ctx, id)
}

// RejectWithdrawal marks a pending request as rejected and refunds the
// debited coins. An already-transitioned request still reaches the
// refund, so a retry after a failure between the two steps converges;
// the refund's own status and refund_processed checks keep it
// exactly-once.
func (s *AdminService) RejectWithdrawal(ctx context.Context, id int64) error {
	if err := s.withdrawalRepo.MarkRejected(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	_, err := s.ledger.RefundWithdrawal(ctx, id)
	return err
}

// ListWithdrawals returns requests filtered by status.
func (s *AdminService) ListWithdrawals(ctx context.Context, status domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	return s.withdrawalRepo.GetByStatus(ctx, status, limit)
}
