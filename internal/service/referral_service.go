package service

import (
	"context"
	"errors"
	"strings"

	"earnfast/internal/domain"
	"earnfast/internal/logger"
	"earnfast/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidCode     = errors.New("invalid referral code")
	ErrSelfReferral    = errors.New("cannot use your own code")
	ErrAlreadyReferred = errors.New("referral code already redeemed")
)

// ReferralService links a referred user to a referrer and pays out both
// bonuses. The referee's signup bonus commits atomically with the
// one-time referred_by marker; the referrer's bonus is best-effort.
type ReferralService struct {
	db           *pgxpool.Pool
	ledger       *LedgerService
	referralRepo *repository.ReferralRepository
	earningRepo  *repository.EarningRepository
}

func NewReferralService(db *pgxpool.Pool) *ReferralService {
	return &ReferralService{
		db:           db,
		ledger:       NewLedgerService(db),
		referralRepo: repository.NewReferralRepository(db),
		earningRepo:  repository.NewEarningRepository(db),
	}
}

// Apply redeems a referral code for userID. signupBonus goes to the
// caller, referBonus to the code's owner.
func (s *ReferralService) Apply(ctx context.Context, userID int64, code string, signupBonus, referBonus int64) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrInvalidCode
	}

	referrerID, err := s.referralRepo.GetUserByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if referrerID == userID {
		return ErrSelfReferral
	}

	var firstName string

	// Referee transaction: the referred_by re-check happens on the
	// locked row, which is what enforces one-time redemption.
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var referredBy *string
	err = tx.QueryRow(ctx,
		`SELECT referred_by, COALESCE(first_name, '') FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&referredBy, &firstName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if referredBy != nil {
		return ErrAlreadyReferred
	}

	if _, err = tx.Exec(ctx,
		`UPDATE users
		 SET balance = balance + $1, total_earned = total_earned + $1, referred_by = $2
		 WHERE id = $3`,
		signupBonus, code, userID,
	); err != nil {
		return err
	}

	signupEarning := &domain.Earning{
		UserID: userID,
		Amount: signupBonus,
		Source: "Signup Bonus",
	}
	if err = s.earningRepo.CreateWithTx(ctx, tx, signupEarning); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	// Referrer credit is best-effort: a failure here is logged but does
	// not undo the referee's committed bonus.
	if err := s.creditReferrer(ctx, referrerID, referBonus, firstName); err != nil {
		logger.Warn("referrer credit failed",
			"referrer_id", referrerID, "code", code, "error", err)
	}

	return nil
}

func (s *ReferralService) creditReferrer(ctx context.Context, referrerID, referBonus int64, refereeName string) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx,
		`UPDATE users
		 SET balance = balance + $1, total_earned = total_earned + $1, total_refers = total_refers + 1
		 WHERE id = $2`,
		referBonus, referrerID,
	); err != nil {
		return err
	}

	source := "Referral Bonus"
	if refereeName != "" {
		source = "Referral: " + refereeName
	}
	earning := &domain.Earning{
		UserID: referrerID,
		Amount: referBonus,
		Source: source,
	}
	if err = s.earningRepo.CreateWithTx(ctx, tx, earning); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
