// Package tasklist holds the task-list component: one fetch on mount,
// one state update per fetch, and a view state derived from it.
package tasklist

import "tasklist/internal/service"

// User-facing text for each view state.
const (
	Heading        = "Task List"
	LoadingMessage = "Loading tasks…"
	FailedMessage  = "Failed to load tasks. Please try again."
	EmptyMessage   = "No tasks found."
)

// Phase is the view state a State renders as.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhasePopulated
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhasePopulated:
		return "populated"
	case PhaseEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// State is the component's held state.
type State struct {
	Tasks   []service.Task
	Err     string
	Loading bool
}

// InitialState is the state at mount.
func InitialState() State {
	return State{Tasks: []service.Task{}, Loading: true}
}

// Phase derives the view state. Loading wins over everything and an error
// suppresses any tasks.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseError
	case len(s.Tasks) == 0:
		return PhaseEmpty
	default:
		return PhasePopulated
	}
}
