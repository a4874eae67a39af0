package domain

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	DeviceID     string    `db:"device_id" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Balance      int64     `db:"balance" json:"balance"`
	ReferralCode string    `db:"referral_code" json:"referral_code"`
	TotalEarned  int64     `db:"total_earned" json:"total_earned"`
	TotalRefers  int64     `db:"total_refers" json:"total_refers"`
	ReferredBy   *string   `db:"referred_by" json:"referred_by,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
