package main

// AppState is the phase the viewer is in. Textures load during Setup; the
// scene is built when Finished is entered.
type AppState int

const (
	StateSetup AppState = iota
	StateFinished
)

func (s AppState) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// stateMachine applies transitions between frames, so a state set during an
// update is entered at the start of the next one.
type stateMachine struct {
	current AppState
	pending AppState
	changed bool
	entered bool
}

func newStateMachine(initial AppState) *stateMachine {
	return &stateMachine{current: initial}
}

// Set queues a transition. Setting the current state is a no-op.
func (m *stateMachine) Set(s AppState) {
	if s == m.current && !m.changed {
		return
	}
	m.pending = s
	m.changed = true
}

func (m *stateMachine) Current() AppState {
	return m.current
}

// step applies a queued transition and reports the state to run this frame
// and whether it is being entered.
func (m *stateMachine) step() (AppState, bool) {
	if m.changed {
		m.current = m.pending
		m.changed = false
		m.entered = false
	}
	enter := !m.entered
	m.entered = true
	return m.current, enter
}
