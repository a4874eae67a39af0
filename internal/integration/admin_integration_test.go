package integration

import (
	"context"
	"errors"
	"testing"

	"earnfast/internal/repository"
	"earnfast/internal/service"
)

func TestAdminRejectWithdrawal_RetryConverges(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	ledger := service.NewLedgerService(db)
	admin := service.NewAdminService(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	if _, err := ledger.CreditGameWin(ctx, u.ID, 500, service.SourceIconFinder); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	w, err := ledger.DebitWithdrawal(ctx, u.ID, 200, "bKash", "01700000000", 100)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	// Simulate a failure between the status transition and the refund:
	// the request is already rejected when the admin retries.
	if err := withdrawalRepo.MarkRejected(ctx, w.ID); err != nil {
		t.Fatalf("mark rejected: %v", err)
	}

	if err := admin.RejectWithdrawal(ctx, w.ID); err != nil {
		t.Fatalf("retry reject: %v", err)
	}
	if got := userBalance(t, db, u.ID); got != 500 {
		t.Fatalf("balance after retried reject = %d; want 500", got)
	}

	// Further retries stay converged and never credit twice.
	if err := admin.RejectWithdrawal(ctx, w.ID); err != nil {
		t.Fatalf("repeat reject: %v", err)
	}
	if got := userBalance(t, db, u.ID); got != 500 {
		t.Fatalf("balance after repeated reject = %d; want 500", got)
	}
}

func TestAdminRejectWithdrawal_PaidIsNotRefundable(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	ledger := service.NewLedgerService(db)
	admin := service.NewAdminService(db)

	if _, err := ledger.CreditGameWin(ctx, u.ID, 500, service.SourceTicTacToe); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	w, err := ledger.DebitWithdrawal(ctx, u.ID, 200, "Nagad", "01800000000", 100)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	if err := admin.PayWithdrawal(ctx, w.ID); err != nil {
		t.Fatalf("pay: %v", err)
	}

	if err := admin.RejectWithdrawal(ctx, w.ID); !errors.Is(err, service.ErrNotRejected) {
		t.Fatalf("reject after pay err = %v; want ErrNotRejected", err)
	}
	if got := userBalance(t, db, u.ID); got != 300 {
		t.Fatalf("balance after reject-on-paid = %d; want 300", got)
	}
}
