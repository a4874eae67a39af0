package domain

import "time"

// Withdrawal represents a payout request made by a user.
// Status is owned by admins after creation; a rejected request is
// refunded exactly once, tracked by RefundProcessed.
type Withdrawal struct {
	ID              int64            `db:"id" json:"id"`
	UserID          int64            `db:"user_id" json:"user_id"`
	UserName        string           `db:"user_name" json:"user_name"`
	Amount          int64            `db:"amount" json:"amount"`
	Method          string           `db:"method" json:"method"`
	Details         string           `db:"details" json:"details"`
	Status          WithdrawalStatus `db:"status" json:"status"`
	RefundProcessed bool             `db:"refund_processed" json:"refund_processed"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	ProcessedAt     *time.Time       `db:"processed_at" json:"processed_at,omitempty"`
}

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusPaid     WithdrawalStatus = "paid"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)
