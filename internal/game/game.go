package game

// Phase tracks a round through its lifecycle. Every round ends in
// exactly one terminal phase, which the caller converts into at most
// one ledger credit.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseWon      Phase = "won"
	PhaseLost     Phase = "lost"
	PhaseTimedOut Phase = "timed_out"
	PhaseClosed   Phase = "closed"
)

// Terminal reports whether the phase accepts no further moves.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost || p == PhaseTimedOut || p == PhaseClosed
}
