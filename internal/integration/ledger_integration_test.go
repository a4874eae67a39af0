package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"earnfast/internal/domain"
	"earnfast/internal/repository"
	"earnfast/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	u := &domain.User{
		DeviceID:  fmt.Sprintf("test-device-%d", time.Now().UnixNano()),
		FirstName: "Tester",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func userBalance(t *testing.T, db *pgxpool.Pool, userID int64) int64 {
	t.Helper()
	var balance int64
	err := db.QueryRow(context.Background(),
		`SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return balance
}

func TestLedger_ConcurrentCreditsSum(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	ledger := service.NewLedgerService(db)

	const workers = 20
	const reward = int64(10)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.CreditGameWin(ctx, u.ID, reward, service.SourceMathQuiz); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent credit: %v", err)
	}

	if got := userBalance(t, db, u.ID); got != workers*reward {
		t.Fatalf("balance = %d; want %d", got, workers*reward)
	}

	var count int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM earnings WHERE user_id = $1`, u.ID).Scan(&count)
	if err != nil {
		t.Fatalf("count earnings: %v", err)
	}
	if count != workers {
		t.Fatalf("earnings count = %d; want %d", count, workers)
	}
}

func TestLedger_CreditValidation(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()
	ledger := service.NewLedgerService(db)

	if _, err := ledger.CreditGameWin(ctx, 1, 0, ""); !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("zero amount err = %v; want ErrInvalidAmount", err)
	}
	if _, err := ledger.CreditGameWin(ctx, 1, -5, ""); !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("negative amount err = %v; want ErrInvalidAmount", err)
	}
	if _, err := ledger.CreditGameWin(ctx, -999, 10, ""); !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("missing user err = %v; want ErrUserNotFound", err)
	}
}

func TestLedger_DebitWithdrawal(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	ledger := service.NewLedgerService(db)

	if _, err := ledger.CreditGameWin(ctx, u.ID, 500, service.SourceIconFinder); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	// Rejections leave the balance untouched.
	if _, err := ledger.DebitWithdrawal(ctx, u.ID, 50, "bKash", "01700000000", 100); !errors.Is(err, service.ErrBelowMinimum) {
		t.Fatalf("below minimum err = %v; want ErrBelowMinimum", err)
	}
	if _, err := ledger.DebitWithdrawal(ctx, u.ID, 10000, "bKash", "01700000000", 100); !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("insufficient err = %v; want ErrInsufficientFunds", err)
	}
	if _, err := ledger.DebitWithdrawal(ctx, u.ID, 200, "", "01700000000", 100); !errors.Is(err, service.ErrMissingDetails) {
		t.Fatalf("missing method err = %v; want ErrMissingDetails", err)
	}
	if got := userBalance(t, db, u.ID); got != 500 {
		t.Fatalf("balance after rejected requests = %d; want 500", got)
	}

	w, err := ledger.DebitWithdrawal(ctx, u.ID, 200, "bKash", "01700000000", 100)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if w.Status != domain.WithdrawalStatusPending {
		t.Fatalf("status = %s; want pending", w.Status)
	}
	if got := userBalance(t, db, u.ID); got != 300 {
		t.Fatalf("balance after debit = %d; want 300", got)
	}
}

func TestLedger_RefundIsIdempotent(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	ledger := service.NewLedgerService(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	if _, err := ledger.CreditGameWin(ctx, u.ID, 500, service.SourceTicTacToe); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	w, err := ledger.DebitWithdrawal(ctx, u.ID, 200, "Nagad", "01800000000", 100)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	// A pending request cannot be refunded.
	if _, err := ledger.RefundWithdrawal(ctx, w.ID); !errors.Is(err, service.ErrNotRejected) {
		t.Fatalf("refund pending err = %v; want ErrNotRejected", err)
	}

	if err := withdrawalRepo.MarkRejected(ctx, w.ID); err != nil {
		t.Fatalf("mark rejected: %v", err)
	}

	refunded, err := ledger.RefundWithdrawal(ctx, w.ID)
	if err != nil {
		t.Fatalf("first refund: %v", err)
	}
	if !refunded {
		t.Fatal("first refund did not credit")
	}
	if got := userBalance(t, db, u.ID); got != 500 {
		t.Fatalf("balance after refund = %d; want 500", got)
	}

	// Retrying is a no-op, not a second credit.
	refunded, err = ledger.RefundWithdrawal(ctx, w.ID)
	if err != nil {
		t.Fatalf("second refund: %v", err)
	}
	if refunded {
		t.Fatal("second refund credited again")
	}
	if got := userBalance(t, db, u.ID); got != 500 {
		t.Fatalf("balance after repeated refund = %d; want 500", got)
	}
}

func TestWithdrawal_StatusTransitions(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	ledger := service.NewLedgerService(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	if _, err := ledger.CreditGameWin(ctx, u.ID, 500, service.SourceMathQuiz); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	w, err := ledger.DebitWithdrawal(ctx, u.ID, 150, "Rocket", "01900000000", 100)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	if err := withdrawalRepo.MarkPaid(ctx, w.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	// Terminal statuses cannot transition again.
	if err := withdrawalRepo.MarkPaid(ctx, w.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("second mark paid err = %v; want pgx.ErrNoRows", err)
	}
	if err := withdrawalRepo.MarkRejected(ctx, w.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("reject after paid err = %v; want pgx.ErrNoRows", err)
	}

	got, err := withdrawalRepo.GetByID(ctx, w.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Status != domain.WithdrawalStatusPaid {
		t.Fatalf("status = %s; want paid", got.Status)
	}
	if got.ProcessedAt == nil {
		t.Fatal("processed_at not set after pay")
	}
}
