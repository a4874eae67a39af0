package game

import (
	"math/rand"
	"testing"
)

func TestComputerMove_Priority(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		name  string
		board []string
		want  int
	}{
		{
			name:  "completes own win before blocking",
			board: []string{"O", "O", "", "X", "X", "", "", "", ""},
			want:  2,
		},
		{
			name:  "blocks the human win",
			board: []string{"X", "X", "", "", "O", "", "", "", ""},
			want:  2,
		},
		{
			name:  "takes center when nothing forced",
			board: []string{"X", "", "", "", "", "", "", "", ""},
			want:  4,
		},
	}

	for _, tc := range cases {
		if got := ComputerMove(tc.board, rng); got != tc.want {
			t.Fatalf("%s: ComputerMove = %d; want %d", tc.name, got, tc.want)
		}
	}
}

func TestComputerMove_RandomFallbackPicksEmpty(t *testing.T) {
	board := []string{"X", "O", "X", "O", "X", "O", "", "", ""}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		got := ComputerMove(board, rng)
		if got < 6 || got > 8 {
			t.Fatalf("ComputerMove = %d; want an empty cell in 6..8", got)
		}
	}
}

func TestFindWinningMove_NoneReturnsMinusOne(t *testing.T) {
	board := make([]string, 9)
	if got := FindWinningMove(board, MarkO); got != -1 {
		t.Fatalf("FindWinningMove on empty board = %d; want -1", got)
	}
}

func TestTicTacToeRound_HumanWin(t *testing.T) {
	r := NewTicTacToeRound(rand.New(rand.NewSource(1)))
	// Force a winning line for X without computer interference.
	r.Board = []string{"X", "X", "", "O", "O", "X", "", "", ""}
	phase, err := r.Move(2)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if phase != PhaseWon {
		t.Fatalf("phase = %s; want %s", phase, PhaseWon)
	}
}

func TestTicTacToeRound_ComputerWinLoses(t *testing.T) {
	r := NewTicTacToeRound(rand.New(rand.NewSource(1)))
	// O completes 0-1-2 regardless of where X plays.
	r.Board = []string{"O", "O", "", "X", "", "", "X", "", ""}
	phase, err := r.Move(8)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if phase != PhaseLost {
		t.Fatalf("phase = %s; want %s", phase, PhaseLost)
	}
}

func TestTicTacToeRound_DrawResetsBoard(t *testing.T) {
	r := NewTicTacToeRound(rand.New(rand.NewSource(1)))
	// One cell left and no winning line for either side.
	r.Board = []string{"X", "O", "X", "X", "O", "O", "O", "X", ""}
	phase, err := r.Move(8)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if phase != PhasePlaying {
		t.Fatalf("phase = %s; want %s", phase, PhasePlaying)
	}
	for i, v := range r.Board {
		if v != "" {
			t.Fatalf("board[%d] = %q after draw reset; want empty", i, v)
		}
	}
}

func TestTicTacToeRound_Errors(t *testing.T) {
	r := NewTicTacToeRound(rand.New(rand.NewSource(1)))

	if _, err := r.Move(9); err != ErrInvalidCell {
		t.Fatalf("Move(9) err = %v; want ErrInvalidCell", err)
	}

	r.Board[0] = MarkO
	if _, err := r.Move(0); err != ErrCellTaken {
		t.Fatalf("Move on taken cell err = %v; want ErrCellTaken", err)
	}

	r.Close()
	if r.Phase != PhaseClosed {
		t.Fatalf("phase after Close = %s; want %s", r.Phase, PhaseClosed)
	}
	if _, err := r.Move(1); err != ErrRoundOver {
		t.Fatalf("Move after Close err = %v; want ErrRoundOver", err)
	}
}
