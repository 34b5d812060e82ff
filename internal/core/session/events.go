package session

import "time"

// Phase represents the current activity of the session.
type Phase string

const (
	PhaseStopped      Phase = "stopped"
	PhaseWorking      Phase = "working"
	PhaseShortResting Phase = "short_resting"
	PhaseLongResting  Phase = "long_resting"
	PhaseInterrupted  Phase = "interrupted"
)

// Active reports whether the countdown advances in this phase.
func (phase Phase) Active() bool {
	switch phase {
	case PhaseWorking, PhaseShortResting, PhaseLongResting:
		return true
	case PhaseStopped, PhaseInterrupted:
		return false
	default:
		panic(InvariantViolation{Phase: phase})
	}
}

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventProgress       EventType = "progress"
	EventPhaseCompleted EventType = "phase_completed"
	EventCountersReset  EventType = "counters_reset"
)

// Event represents a controller update for observers.
type Event struct {
	Type EventType
	// Completed is the phase that just overflowed, set on EventPhaseCompleted.
	Completed Phase
	Snapshot  Snapshot
	At        time.Time
}
