package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"earnfast/internal/repository"
	"earnfast/internal/service"
)

func TestReferral_Apply(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	referrer := createUser(t, db)
	referee := createUser(t, db)

	referrals := service.NewReferralService(db)

	const signupBonus = int64(100)
	const referBonus = int64(500)

	if err := referrals.Apply(ctx, referee.ID, referrer.ReferralCode, signupBonus, referBonus); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := userBalance(t, db, referee.ID); got != signupBonus {
		t.Fatalf("referee balance = %d; want %d", got, signupBonus)
	}
	if got := userBalance(t, db, referrer.ID); got != referBonus {
		t.Fatalf("referrer balance = %d; want %d", got, referBonus)
	}

	fresh, err := repository.NewUserRepository(db).GetByID(ctx, referee.ID)
	if err != nil {
		t.Fatalf("get referee: %v", err)
	}
	if fresh.ReferredBy == nil || *fresh.ReferredBy != referrer.ReferralCode {
		t.Fatalf("referred_by = %v; want %s", fresh.ReferredBy, referrer.ReferralCode)
	}

	refFresh, err := repository.NewUserRepository(db).GetByID(ctx, referrer.ID)
	if err != nil {
		t.Fatalf("get referrer: %v", err)
	}
	if refFresh.TotalRefers != 1 {
		t.Fatalf("total_refers = %d; want 1", refFresh.TotalRefers)
	}
}

func TestReferral_SingleRedemption(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	first := createUser(t, db)
	second := createUser(t, db)
	referee := createUser(t, db)

	referrals := service.NewReferralService(db)

	if err := referrals.Apply(ctx, referee.ID, first.ReferralCode, 100, 500); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	// Neither the same code nor a different one can be redeemed twice.
	if err := referrals.Apply(ctx, referee.ID, first.ReferralCode, 100, 500); !errors.Is(err, service.ErrAlreadyReferred) {
		t.Fatalf("repeat apply err = %v; want ErrAlreadyReferred", err)
	}
	if err := referrals.Apply(ctx, referee.ID, second.ReferralCode, 100, 500); !errors.Is(err, service.ErrAlreadyReferred) {
		t.Fatalf("second code apply err = %v; want ErrAlreadyReferred", err)
	}

	if got := userBalance(t, db, referee.ID); got != 100 {
		t.Fatalf("referee balance = %d; want a single signup bonus of 100", got)
	}
}

func TestReferral_Rejections(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db)
	referrals := service.NewReferralService(db)

	if err := referrals.Apply(ctx, u.ID, u.ReferralCode, 100, 500); !errors.Is(err, service.ErrSelfReferral) {
		t.Fatalf("self apply err = %v; want ErrSelfReferral", err)
	}
	if err := referrals.Apply(ctx, u.ID, "FAST00000", 100, 500); !errors.Is(err, service.ErrInvalidCode) {
		t.Fatalf("unknown code err = %v; want ErrInvalidCode", err)
	}
	if err := referrals.Apply(ctx, u.ID, "   ", 100, 500); !errors.Is(err, service.ErrInvalidCode) {
		t.Fatalf("blank code err = %v; want ErrInvalidCode", err)
	}
	if got := userBalance(t, db, u.ID); got != 0 {
		t.Fatalf("balance after rejected applies = %d; want 0", got)
	}
}

func TestReferral_CodeNormalization(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	referrer := createUser(t, db)
	referee := createUser(t, db)

	referrals := service.NewReferralService(db)

	// Codes are matched case-insensitively with surrounding whitespace
	// stripped.
	sloppy := "  " + strings.ToLower(referrer.ReferralCode) + "  "
	if err := referrals.Apply(ctx, referee.ID, sloppy, 100, 500); err != nil {
		t.Fatalf("apply with sloppy code: %v", err)
	}
}
