package handlers

import (
	"errors"
	"net/http"
	"time"

	"earnfast/internal/game"
	"earnfast/internal/service"

	"github.com/gin-gonic/gin"
)

// IconFinderStart begins a new icon-finder streak round.
func (h *Handler) IconFinderStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r := h.GameService.StartIconFinder(userID)
	c.JSON(http.StatusOK, iconFinderView(r))
}

type IconPickRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

// IconFinderPick submits a cell selection.
func (h *Handler) IconFinderPick(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req IconPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cell is required"})
		return
	}

	settings := h.SettingsService.Snapshot(c.Request.Context())
	r, newBalance, err := h.GameService.PickIcon(c.Request.Context(), userID, *req.Cell, settings.GameReward)
	if err != nil {
		gameError(c, err)
		return
	}

	resp := iconFinderView(r)
	if r.Phase == game.PhaseWon {
		resp["reward"] = settings.GameReward
		resp["balance"] = newBalance
	}
	c.JSON(http.StatusOK, resp)
}

// IconFinderState returns the active round, if any.
func (h *Handler) IconFinderState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r, ok := h.GameService.IconFinderState(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active round"})
		return
	}
	c.JSON(http.StatusOK, iconFinderView(r))
}

// TicTacToeStart begins a new board against the computer.
func (h *Handler) TicTacToeStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r := h.GameService.StartTicTacToe(userID)
	c.JSON(http.StatusOK, gin.H{"board": r.Board, "phase": r.Phase})
}

type TTTMoveRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

// TicTacToeMove places the human mark and returns the board after the
// computer's response.
func (h *Handler) TicTacToeMove(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req TTTMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cell is required"})
		return
	}

	settings := h.SettingsService.Snapshot(c.Request.Context())
	r, newBalance, err := h.GameService.MoveTicTacToe(c.Request.Context(), userID, *req.Cell, settings.TTTReward)
	if err != nil {
		gameError(c, err)
		return
	}

	resp := gin.H{"board": r.Board, "phase": r.Phase}
	if r.Phase == game.PhaseWon {
		resp["reward"] = settings.TTTReward
		resp["balance"] = newBalance
	}
	c.JSON(http.StatusOK, resp)
}

// TicTacToeState returns the active board, if any.
func (h *Handler) TicTacToeState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r, ok := h.GameService.TicTacToeState(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active round"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": r.Board, "phase": r.Phase})
}

// MathStart begins a new quiz round.
func (h *Handler) MathStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r := h.GameService.StartMath(userID)
	c.JSON(http.StatusOK, mathView(r))
}

type MathAnswerRequest struct {
	Answer *int `json:"answer" binding:"required"`
}

// MathAnswer submits an option. A wrong answer returns a fresh
// question; a correct one wins the round.
func (h *Handler) MathAnswer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req MathAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer is required"})
		return
	}

	settings := h.SettingsService.Snapshot(c.Request.Context())
	r, newBalance, err := h.GameService.AnswerMath(c.Request.Context(), userID, *req.Answer, settings.MathReward)
	if err != nil {
		gameError(c, err)
		return
	}

	resp := mathView(r)
	if r.Phase == game.PhaseWon {
		resp["reward"] = settings.MathReward
		resp["balance"] = newBalance
	}
	c.JSON(http.StatusOK, resp)
}

// GamesClose abandons any in-progress rounds for the caller.
func (h *Handler) GamesClose(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.GameService.CloseRounds(userID)
	c.JSON(http.StatusOK, gin.H{"message": "rounds closed"})
}

func iconFinderView(r game.IconFinderRound) gin.H {
	return gin.H{
		"target":       r.Target,
		"grid":         r.Grid,
		"streak":       r.Streak,
		"remaining_ms": r.Remaining(time.Now()).Milliseconds(),
		"phase":        r.Phase,
	}
}

func mathView(r game.MathRound) gin.H {
	return gin.H{
		"question": gin.H{
			"a":       r.Question.A,
			"b":       r.Question.B,
			"options": r.Question.Options,
		},
		"phase": r.Phase,
	}
}

func gameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveRound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active round"})
	case errors.Is(err, game.ErrRoundOver):
		c.JSON(http.StatusConflict, gin.H{"error": "round is over"})
	case errors.Is(err, game.ErrInvalidCell), errors.Is(err, game.ErrCellTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "game error"})
	}
}
