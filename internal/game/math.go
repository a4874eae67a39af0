package game

import "math/rand"

const (
	MathOperandMin = 1
	MathOperandMax = 20
	MathOptions    = 4
)

// MathQuestion is one addition quiz: two operands in [1,20] and four
// shuffled options, one of which is the sum.
type MathQuestion struct {
	A       int   `json:"a"`
	B       int   `json:"b"`
	Answer  int   `json:"-"`
	Options []int `json:"options"`
}

// NewMathQuestion generates a question with the correct answer and
// three decoys at small random offsets.
func NewMathQuestion(rng *rand.Rand) *MathQuestion {
	a := MathOperandMin + rng.Intn(MathOperandMax)
	b := MathOperandMin + rng.Intn(MathOperandMax)
	ans := a + b

	options := []int{
		ans,
		ans + rng.Intn(5) + 1,
		ans - rng.Intn(5) - 1,
		ans + 10,
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &MathQuestion{A: a, B: b, Answer: ans, Options: options}
}

// MathRound holds the current question. A wrong answer regenerates the
// question with no penalty; a correct answer wins immediately.
type MathRound struct {
	Question *MathQuestion `json:"question"`
	Phase    Phase         `json:"phase"`

	rng *rand.Rand
}

func NewMathRound(rng *rand.Rand) *MathRound {
	return &MathRound{
		Question: NewMathQuestion(rng),
		Phase:    PhasePlaying,
		rng:      rng,
	}
}

// Answer submits a picked option and returns the resulting phase.
func (r *MathRound) Answer(pick int) (Phase, error) {
	if r.Phase.Terminal() {
		return r.Phase, ErrRoundOver
	}
	if pick == r.Question.Answer {
		r.Phase = PhaseWon
		return r.Phase, nil
	}
	r.Question = NewMathQuestion(r.rng)
	return r.Phase, nil
}

// Close abandons the round; no credit is granted.
func (r *MathRound) Close() {
	if !r.Phase.Terminal() {
		r.Phase = PhaseClosed
	}
}
