package domain

import "time"

// Settings is the global configuration singleton. Read-mostly;
// mutated only through the admin API.
type Settings struct {
	GameReward     int64     `db:"game_reward" json:"game_reward"`
	TTTReward      int64     `db:"ttt_reward" json:"ttt_reward"`
	MathReward     int64     `db:"math_reward" json:"math_reward"`
	ReferBonus     int64     `db:"refer_bonus" json:"refer_bonus"`
	SignupBonus    int64     `db:"signup_bonus" json:"signup_bonus"`
	MinWithdraw    int64     `db:"min_withdraw" json:"min_withdraw"`
	CoinValue      string    `db:"coin_value" json:"coin_value"`
	PaymentMethods []string  `db:"payment_methods" json:"payment_methods"`
	Socials        Socials   `db:"socials" json:"socials"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type Socials struct {
	Telegram string `json:"telegram,omitempty"`
	YouTube  string `json:"youtube,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

// DefaultSettings mirrors the fallbacks used when no settings row exists yet.
func DefaultSettings() Settings {
	return Settings{
		GameReward:     10,
		TTTReward:      10,
		MathReward:     10,
		ReferBonus:     500,
		SignupBonus:    100,
		MinWithdraw:    100,
		CoinValue:      "1 Taka",
		PaymentMethods: []string{"bKash", "Nagad", "Rocket"},
	}
}
