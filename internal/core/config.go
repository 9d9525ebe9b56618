package core

// Phase is the authoritative state-machine variable of a game session.
type Phase int

const (
	PhaseStart   Phase = iota // Idle, nothing simulated yet
	PhasePlaying              // Simulation active
	PhaseOver                 // Simulation frozen, overlay shown
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhasePlaying:
		return "Playing"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// GameState represents the current state of a game session.
type GameState struct {
	Frame int   // Ticks since the last (re)start
	Score int   // Obstacles passed since the last (re)start
	Phase Phase // Start, Playing or Over
}

// GameOver reports whether the session is showing the game-over overlay.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseOver
}

// StepResult is returned after each input activation or simulation tick.
type StepResult struct {
	State GameState
	// Cues lists the sounds to play, in order.
	Cues []Cue
	// Token identifies the loop that produced this result. A restart mints a
	// new token; ticks carrying an older one must be dropped.
	Token uint64
	// Restarted is true when this result minted a new Token.
	Restarted bool
	// Continue is true while another tick should be scheduled for Token.
	Continue bool
}
