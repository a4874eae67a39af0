package game

import (
	"errors"
	"math/rand"
)

const (
	MarkX = "X" // human
	MarkO = "O" // computer
)

var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

var ErrCellTaken = errors.New("cell already taken")

// TicTacToeRound plays the human (X) against a fixed-priority heuristic
// opponent (O). A draw silently resets the board; the round only ends
// on a win, a loss or an explicit close.
type TicTacToeRound struct {
	Board []string `json:"board"`
	Phase Phase    `json:"phase"`

	rng *rand.Rand
}

func NewTicTacToeRound(rng *rand.Rand) *TicTacToeRound {
	return &TicTacToeRound{
		Board: make([]string, 9),
		Phase: PhasePlaying,
		rng:   rng,
	}
}

// HasWin reports whether mark holds three in a line.
func HasWin(board []string, mark string) bool {
	for _, line := range winLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}
	return false
}

// FindWinningMove returns the index that completes three in a line for
// mark, or -1 when no such move exists.
func FindWinningMove(board []string, mark string) int {
	for _, line := range winLines {
		x, y, z := line[0], line[1], line[2]
		if board[x] == mark && board[y] == mark && board[z] == "" {
			return z
		}
		if board[x] == mark && board[z] == mark && board[y] == "" {
			return y
		}
		if board[y] == mark && board[z] == mark && board[x] == "" {
			return x
		}
	}
	return -1
}

// ComputerMove picks O's move: complete a win, block X, take the
// center, then a uniformly random empty cell.
func ComputerMove(board []string, rng *rand.Rand) int {
	if move := FindWinningMove(board, MarkO); move != -1 {
		return move
	}
	if move := FindWinningMove(board, MarkX); move != -1 {
		return move
	}
	if board[4] == "" {
		return 4
	}
	var empty []int
	for i, v := range board {
		if v == "" {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return -1
	}
	return empty[rng.Intn(len(empty))]
}

// Move places X at cell and, if the round continues, lets the computer
// respond. Returns the resulting phase.
func (r *TicTacToeRound) Move(cell int) (Phase, error) {
	if r.Phase.Terminal() {
		return r.Phase, ErrRoundOver
	}
	if cell < 0 || cell >= len(r.Board) {
		return r.Phase, ErrInvalidCell
	}
	if r.Board[cell] != "" {
		return r.Phase, ErrCellTaken
	}

	r.Board[cell] = MarkX
	if HasWin(r.Board, MarkX) {
		r.Phase = PhaseWon
		return r.Phase, nil
	}
	if full(r.Board) {
		r.reset() // draw
		return r.Phase, nil
	}

	move := ComputerMove(r.Board, r.rng)
	if move != -1 {
		r.Board[move] = MarkO
		if HasWin(r.Board, MarkO) {
			r.Phase = PhaseLost
			return r.Phase, nil
		}
	}
	if full(r.Board) {
		r.reset() // draw
	}
	return r.Phase, nil
}

// Close abandons the round; no credit is granted.
func (r *TicTacToeRound) Close() {
	if !r.Phase.Terminal() {
		r.Phase = PhaseClosed
	}
}

func (r *TicTacToeRound) reset() {
	r.Board = make([]string, 9)
}

func full(board []string) bool {
	for _, v := range board {
		if v == "" {
			return false
		}
	}
	return true
}
