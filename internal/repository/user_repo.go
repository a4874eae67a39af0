package repository

import (
	"context"
	"errors"

	"earnfast/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, device_id, COALESCE(first_name, ''), balance, referral_code,
	total_earned, total_refers, referred_by, created_at`

func (r *UserRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE device_id = $1`,
		deviceID,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// Create inserts the user and registers their referral code in the same
// transaction. Code generation retries on registry conflicts so a
// collision can never silently reassign an existing code.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for attempt := 0; attempt < 5; attempt++ {
		code := GenerateReferralCode()

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM referral_codes WHERE code = $1)`,
			code,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue // collision, try another code
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO users (device_id, first_name, balance, referral_code)
			 VALUES ($1, $2, 0, $3)
			 RETURNING id, created_at`,
			u.DeviceID, u.FirstName, code,
		).Scan(&u.ID, &u.CreatedAt); err != nil {
			return err
		}

		// Registry insert shares the transaction; the code PK backs the
		// pre-check in case two signups race on the same code.
		if _, err := tx.Exec(ctx,
			`INSERT INTO referral_codes (code, user_id) VALUES ($1, $2)`,
			code, u.ID,
		); err != nil {
			return err
		}

		u.ReferralCode = code
		return tx.Commit(ctx)
	}

	return errors.New("could not allocate a referral code")
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.DeviceID,
		&u.FirstName,
		&u.Balance,
		&u.ReferralCode,
		&u.TotalEarned,
		&u.TotalRefers,
		&u.ReferredBy,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
