package handlers

import (
	"earnfast/internal/repository"
	"earnfast/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB              *pgxpool.Pool
	UserRepo        *repository.UserRepository
	EarningRepo     *repository.EarningRepository
	WithdrawalRepo  *repository.WithdrawalRepository
	ReferralRepo    *repository.ReferralRepository
	AdminRepo       *repository.AdminRepository
	Ledger          *service.LedgerService
	GameService     *service.GameService
	ReferralService *service.ReferralService
	SettingsService *service.SettingsService
	AdminService    *service.AdminService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:              db,
		UserRepo:        repository.NewUserRepository(db),
		EarningRepo:     repository.NewEarningRepository(db),
		WithdrawalRepo:  repository.NewWithdrawalRepository(db),
		ReferralRepo:    repository.NewReferralRepository(db),
		AdminRepo:       repository.NewAdminRepository(db),
		Ledger:          service.NewLedgerService(db),
		GameService:     service.NewGameService(db),
		ReferralService: service.NewReferralService(db),
		SettingsService: service.NewSettingsService(db),
		AdminService:    service.NewAdminService(db),
	}
}

// getUserID extracts the authenticated user id from the Gin context.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
