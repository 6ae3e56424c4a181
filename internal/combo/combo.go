package combo

import "time"

const (
	DefaultWindow         = 3 * time.Second
	DefaultActionsPerStep = 10
)

// State tracks a streak of rapid manual actions. It is Idle until the first
// action, then Active until Window passes with no further action.
//
// State is transient and never persisted.
type State struct {
	window    time.Duration
	step      uint64
	counter   uint64
	active    bool
	remaining time.Duration
}

// New returns an idle combo. Non-positive arguments fall back to the
// defaults.
func New(window time.Duration, actionsPerStep uint64) *State {
	if window <= 0 {
		window = DefaultWindow
	}
	if actionsPerStep == 0 {
		actionsPerStep = DefaultActionsPerStep
	}
	return &State{window: window, step: actionsPerStep}
}

// Register records one manual action and resets the decay timer. It
// reports whether the action moved the combo to a new level.
func (s *State) Register() (stepped bool) {
	before := s.Level()
	s.counter++
	s.active = true
	s.remaining = s.window
	return s.Level() > before
}

// Advance runs the decay timer down by dt. It reports whether the combo
// expired during this call.
func (s *State) Advance(dt time.Duration) (expired bool) {
	if !s.active || dt <= 0 {
		return false
	}
	s.remaining -= dt
	if s.remaining > 0 {
		return false
	}
	s.reset()
	return true
}

func (s *State) reset() {
	s.counter = 0
	s.active = false
	s.remaining = 0
}

// Level is counter / actions-per-step, or 0 whenever the combo is idle.
func (s *State) Level() uint64 {
	if !s.active {
		return 0
	}
	return s.counter / s.step
}

// Multiplier is the factor applied to manual-action yield: 1 + Level while
// active, 1 otherwise.
func (s *State) Multiplier() uint64 {
	if !s.active {
		return 1
	}
	return 1 + s.Level()
}

func (s *State) Active() bool { return s.active }

func (s *State) Counter() uint64 { return s.counter }

func (s *State) Remaining() time.Duration { return s.remaining }

func (s *State) Window() time.Duration { return s.window }
