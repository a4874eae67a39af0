package http

import (
	"earnfast/internal/config"
	"earnfast/internal/http/handlers"
	"earnfast/internal/http/middleware"
	"earnfast/internal/presence"
	"earnfast/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, tracker presence.Tracker, hub *ws.Hub, version string) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg, tracker)

	// WebSocket for the live online counter
	r.GET("/ws/online", h.OnlineWS(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config, tracker presence.Tracker) {
	heartbeat := middleware.Presence(tracker)

	// Auth (anonymous, device-bound)
	api.POST("/auth", h.Auth)

	// User profile
	api.GET("/me", middleware.JWT(), heartbeat, h.Me)
	api.GET("/me/earnings", middleware.JWT(), heartbeat, h.MyEarnings)
	api.GET("/me/withdrawals", middleware.JWT(), heartbeat, h.MyWithdrawals)

	// Referral system
	referral := api.Group("/referral")
	referral.Use(middleware.JWT(), heartbeat)
	{
		referral.GET("/code", h.GetReferralCode)
		referral.GET("/stats", h.GetReferralStats)
		referral.POST("/apply", h.ApplyReferralCode)
	}

	// Game rate limiter middleware (per user, not per IP)
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, cfg.GameRateWindow)

	games := api.Group("/game")
	games.Use(middleware.JWT(), heartbeat)
	{
		games.POST("/icon-finder/start", gameRL, h.IconFinderStart)
		games.POST("/icon-finder/pick", gameRL, h.IconFinderPick)
		games.GET("/icon-finder/state", h.IconFinderState)

		games.POST("/tic-tac-toe/start", gameRL, h.TicTacToeStart)
		games.POST("/tic-tac-toe/move", gameRL, h.TicTacToeMove)
		games.GET("/tic-tac-toe/state", h.TicTacToeState)

		games.POST("/math/start", gameRL, h.MathStart)
		games.POST("/math/answer", gameRL, h.MathAnswer)

		games.POST("/close", h.GamesClose)
	}

	// Withdrawals
	api.POST("/withdrawals", middleware.JWT(), heartbeat, h.CreateWithdrawal)

	// Public app settings
	api.GET("/settings", h.GetSettings)

	// Admin dashboard
	api.POST("/admin/login", h.AdminLogin)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminJWT())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/withdrawals", h.AdminListWithdrawals)
		admin.POST("/withdrawals/:id/pay", h.AdminPayWithdrawal)
		admin.POST("/withdrawals/:id/reject", h.AdminRejectWithdrawal)
		admin.PUT("/settings", h.AdminUpdateSettings)
	}
}
