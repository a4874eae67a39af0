package repository

import (
	"context"
	"encoding/json"
	"errors"

	"earnfast/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings singleton, falling back to defaults when the
// row has not been created yet.
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	var (
		s           domain.Settings
		methodsJSON []byte
		socialsJSON []byte
	)

	err := r.db.QueryRow(ctx,
		`SELECT game_reward, ttt_reward, math_reward, refer_bonus, signup_bonus,
		        min_withdraw, coin_value, payment_methods, socials, updated_at
		 FROM settings WHERE id = 1`,
	).Scan(
		&s.GameReward, &s.TTTReward, &s.MathReward, &s.ReferBonus, &s.SignupBonus,
		&s.MinWithdraw, &s.CoinValue, &methodsJSON, &socialsJSON, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, err
	}

	if len(methodsJSON) > 0 {
		_ = json.Unmarshal(methodsJSON, &s.PaymentMethods)
	}
	if len(socialsJSON) > 0 {
		_ = json.Unmarshal(socialsJSON, &s.Socials)
	}
	return s, nil
}

// Update upserts the settings singleton.
func (r *SettingsRepository) Update(ctx context.Context, s domain.Settings) error {
	methodsJSON, err := json.Marshal(s.PaymentMethods)
	if err != nil {
		methodsJSON = []byte("[]")
	}
	socialsJSON, err := json.Marshal(s.Socials)
	if err != nil {
		socialsJSON = []byte("{}")
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO settings (id, game_reward, ttt_reward, math_reward, refer_bonus,
		                       signup_bonus, min_withdraw, coin_value, payment_methods, socials, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		   game_reward = EXCLUDED.game_reward,
		   ttt_reward = EXCLUDED.ttt_reward,
		   math_reward = EXCLUDED.math_reward,
		   refer_bonus = EXCLUDED.refer_bonus,
		   signup_bonus = EXCLUDED.signup_bonus,
		   min_withdraw = EXCLUDED.min_withdraw,
		   coin_value = EXCLUDED.coin_value,
		   payment_methods = EXCLUDED.payment_methods,
		   socials = EXCLUDED.socials,
		   updated_at = NOW()`,
		s.GameReward, s.TTTReward, s.MathReward, s.ReferBonus,
		s.SignupBonus, s.MinWithdraw, s.CoinValue, methodsJSON, socialsJSON,
	)
	return err
}
