package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"earnfast/internal/game"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoActiveRound = errors.New("no active round")

// Reward source labels recorded in the earnings log.
const (
	SourceIconFinder = "Image Finder Master"
	SourceTicTacToe  = "Tic Tac Toe Champion"
	SourceMathQuiz   = "Math Genius"
)

// GameService manages active game rounds in memory, one per user per
// game, and converts terminal wins into exactly one ledger credit.
// The mutex covers round lookup, mutation and removal, so a round's
// terminal transition is observed by exactly one request and the shared
// rng is never used concurrently. Callers receive value snapshots,
// never the live round.
type GameService struct {
	ledger *LedgerService

	mu         sync.Mutex
	iconRounds map[int64]*game.IconFinderRound
	tttRounds  map[int64]*game.TicTacToeRound
	mathRounds map[int64]*game.MathRound
	rng        *rand.Rand

	now func() time.Time
}

func NewGameService(db *pgxpool.Pool) *GameService {
	return &GameService{
		ledger:     NewLedgerService(db),
		iconRounds: make(map[int64]*game.IconFinderRound),
		tttRounds:  make(map[int64]*game.TicTacToeRound),
		mathRounds: make(map[int64]*game.MathRound),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

func snapshotIcon(r *game.IconFinderRound) game.IconFinderRound {
	snap := *r
	snap.Grid = append([]string(nil), r.Grid...)
	return snap
}

func snapshotTTT(r *game.TicTacToeRound) game.TicTacToeRound {
	snap := *r
	snap.Board = append([]string(nil), r.Board...)
	return snap
}

// StartIconFinder begins a fresh streak round, replacing any round the
// user abandoned.
func (s *GameService) StartIconFinder(userID int64) game.IconFinderRound {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := game.NewIconFinderRound(s.rng, s.now())
	s.iconRounds[userID] = r
	return snapshotIcon(r)
}

// PickIcon applies a cell selection; a win credits the reward.
func (s *GameService) PickIcon(ctx context.Context, userID int64, cell int, reward int64) (game.IconFinderRound, int64, error) {
	s.mu.Lock()
	r, ok := s.iconRounds[userID]
	if !ok {
		s.mu.Unlock()
		return game.IconFinderRound{}, 0, ErrNoActiveRound
	}

	phase, err := r.Pick(cell, s.now())
	if phase.Terminal() {
		delete(s.iconRounds, userID)
	}
	snap := snapshotIcon(r)
	s.mu.Unlock()

	if err != nil {
		return snap, 0, err
	}
	if phase == game.PhaseWon {
		newBalance, err := s.ledger.CreditGameWin(ctx, userID, reward, SourceIconFinder)
		return snap, newBalance, err
	}
	return snap, 0, nil
}

// IconFinderState returns the user's active round, if any.
func (s *GameService) IconFinderState(userID int64) (game.IconFinderRound, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.iconRounds[userID]
	if !ok {
		return game.IconFinderRound{}, false
	}
	return snapshotIcon(r), true
}

// StartTicTacToe begins a fresh board.
func (s *GameService) StartTicTacToe(userID int64) game.TicTacToeRound {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := game.NewTicTacToeRound(s.rng)
	s.tttRounds[userID] = r
	return snapshotTTT(r)
}

// MoveTicTacToe applies the human move and the computer response; a win
// credits the reward.
func (s *GameService) MoveTicTacToe(ctx context.Context, userID int64, cell int, reward int64) (game.TicTacToeRound, int64, error) {
	s.mu.Lock()
	r, ok := s.tttRounds[userID]
	if !ok {
		s.mu.Unlock()
		return game.TicTacToeRound{}, 0, ErrNoActiveRound
	}

	phase, err := r.Move(cell)
	if phase.Terminal() {
		delete(s.tttRounds, userID)
	}
	snap := snapshotTTT(r)
	s.mu.Unlock()

	if err != nil {
		return snap, 0, err
	}
	if phase == game.PhaseWon {
		newBalance, err := s.ledger.CreditGameWin(ctx, userID, reward, SourceTicTacToe)
		return snap, newBalance, err
	}
	return snap, 0, nil
}

// TicTacToeState returns the user's active board, if any.
func (s *GameService) TicTacToeState(userID int64) (game.TicTacToeRound, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.tttRounds[userID]
	if !ok {
		return game.TicTacToeRound{}, false
	}
	return snapshotTTT(r), true
}

// StartMath begins a fresh quiz round.
func (s *GameService) StartMath(userID int64) game.MathRound {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := game.NewMathRound(s.rng)
	s.mathRounds[userID] = r
	return *r
}

// AnswerMath submits an option; a correct answer wins and credits the
// reward, a wrong one regenerates the question.
func (s *GameService) AnswerMath(ctx context.Context, userID int64, pick int, reward int64) (game.MathRound, int64, error) {
	s.mu.Lock()
	r, ok := s.mathRounds[userID]
	if !ok {
		s.mu.Unlock()
		return game.MathRound{}, 0, ErrNoActiveRound
	}

	phase, err := r.Answer(pick)
	if phase.Terminal() {
		delete(s.mathRounds, userID)
	}
	snap := *r
	s.mu.Unlock()

	if err != nil {
		return snap, 0, err
	}
	if phase == game.PhaseWon {
		newBalance, err := s.ledger.CreditGameWin(ctx, userID, reward, SourceMathQuiz)
		return snap, newBalance, err
	}
	return snap, 0, nil
}

// CloseRounds discards any in-progress rounds for the user. Abandoned
// rounds earn nothing.
func (s *GameService) CloseRounds(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.iconRounds[userID]; ok {
		r.Close()
		delete(s.iconRounds, userID)
	}
	if r, ok := s.tttRounds[userID]; ok {
		r.Close()
		delete(s.tttRounds, userID)
	}
	if r, ok := s.mathRounds[userID]; ok {
		r.Close()
		delete(s.mathRounds, userID)
	}
}
