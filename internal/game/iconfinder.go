package game

import (
	"errors"
	"math/rand"
	"time"
)

// Icons is the fixed pool the icon-finder draws from.
var Icons = []string{
	"apple", "carrot", "lemon", "pepper", "pizza", "ice-cream",
	"fish", "cat", "dog", "bird", "dragon", "ghost",
	"robot", "rocket", "car", "bike", "tree", "leaf", "flame", "droplet",
}

const (
	IconGridSize     = 12
	IconWinStreak    = 3
	IconStartTime    = 30 * time.Second
	IconCorrectBonus = 5 * time.Second
	IconWrongPenalty = 5 * time.Second
)

var (
	ErrRoundOver   = errors.New("round is over")
	ErrInvalidCell = errors.New("invalid cell index")
)

// IconFinderRound is one streak game: find the target icon in a 12-cell
// grid. A correct pick advances the streak and extends the timer; a
// wrong pick shortens the timer. The streak never resets on a wrong
// pick; only the clock punishes mistakes.
type IconFinderRound struct {
	Target   string    `json:"target"`
	Grid     []string  `json:"grid"`
	Streak   int       `json:"streak"`
	Deadline time.Time `json:"deadline"`
	Phase    Phase     `json:"phase"`

	rng *rand.Rand
}

// NewIconFinderRound starts a round with a fresh grid and a full clock.
func NewIconFinderRound(rng *rand.Rand, now time.Time) *IconFinderRound {
	r := &IconFinderRound{
		Phase:    PhasePlaying,
		Deadline: now.Add(IconStartTime),
		rng:      rng,
	}
	r.dealGrid()
	return r
}

// dealGrid picks a target and fills the grid with one target cell and
// eleven non-target distractors, shuffled.
func (r *IconFinderRound) dealGrid() {
	target := Icons[r.rng.Intn(len(Icons))]
	cells := make([]string, 0, IconGridSize)
	cells = append(cells, target)
	for len(cells) < IconGridSize {
		wrong := Icons[r.rng.Intn(len(Icons))]
		if wrong == target {
			continue
		}
		cells = append(cells, wrong)
	}
	r.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	r.Target = target
	r.Grid = cells
}

// Remaining returns the time left on the clock, floored at zero.
func (r *IconFinderRound) Remaining(now time.Time) time.Duration {
	d := r.Deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Pick handles a cell selection. Returns the resulting phase.
func (r *IconFinderRound) Pick(cell int, now time.Time) (Phase, error) {
	if r.Phase.Terminal() {
		return r.Phase, ErrRoundOver
	}
	if cell < 0 || cell >= len(r.Grid) {
		return r.Phase, ErrInvalidCell
	}
	if !now.Before(r.Deadline) {
		r.Phase = PhaseTimedOut
		return r.Phase, nil
	}

	if r.Grid[cell] == r.Target {
		r.Streak++
		if r.Streak >= IconWinStreak {
			r.Phase = PhaseWon
			return r.Phase, nil
		}
		r.Deadline = r.Deadline.Add(IconCorrectBonus)
		r.dealGrid()
		return r.Phase, nil
	}

	r.Deadline = r.Deadline.Add(-IconWrongPenalty)
	if !now.Before(r.Deadline) {
		r.Phase = PhaseTimedOut
	}
	return r.Phase, nil
}

// Close abandons the round; no credit is granted.
func (r *IconFinderRound) Close() {
	if !r.Phase.Terminal() {
		r.Phase = PhaseClosed
	}
}
