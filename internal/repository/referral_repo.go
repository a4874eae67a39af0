package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCodeNotFound = errors.New("referral code not found")

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// GenerateReferralCode produces a code in the FAST##### format.
func GenerateReferralCode() string {
	return fmt.Sprintf("FAST%d", 10000+rand.Intn(90000))
}

// GetUserByCode resolves a referral code to the owning user id.
func (r *ReferralRepository) GetUserByCode(ctx context.Context, code string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM referral_codes WHERE code = $1`,
		code,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCodeNotFound
		}
		return 0, err
	}
	return userID, nil
}

// Stats summarizes a user's referral activity.
type ReferralStats struct {
	TotalRefers int64 `json:"total_refers"`
	TotalEarned int64 `json:"total_earned"`
}

// GetStats returns referral count and coins earned from referrals.
func (r *ReferralRepository) GetStats(ctx context.Context, userID int64) (*ReferralStats, error) {
	stats := &ReferralStats{}
	err := r.db.QueryRow(ctx,
		`SELECT total_refers FROM users WHERE id = $1`,
		userID,
	).Scan(&stats.TotalRefers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	_ = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM earnings
		 WHERE user_id = $1 AND source LIKE 'Referral%'`,
		userID,
	).Scan(&stats.TotalEarned)

	return stats, nil
}
