package dial

// State is read access to the current selection.
type State interface {
	Current() Option
}

// StateMachine owns the current selection. It is not safe for concurrent
// use; the host's event loop is the only caller.
type StateMachine struct {
	current Option
}

// NewStateMachine returns a state machine positioned at the first option.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: First()}
}

// Current returns the active option.
func (s *StateMachine) Current() Option {
	return s.current
}

// Advance moves to the cyclic successor and returns the new current option.
func (s *StateMachine) Advance() Option {
	s.current = Next(s.current)
	return s.current
}

// AtLast reports whether the next Advance wraps back to the first option.
func (s *StateMachine) AtLast() bool {
	return s.current == Last()
}
