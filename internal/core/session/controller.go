package session

import (
	"fmt"
	"sync"
	"time"

	"passata/internal/core/model"
)

// Options contains the collaborators driven by the controller.
type Options struct {
	Clock Clock
	Alert AlertPlayer
}

// Controller is the pomodoro state machine. It owns the session phase, the
// countdown and the cumulative counters. Commands and ticks are serialized.
type Controller struct {
	mu       sync.Mutex
	config   model.SessionConfig
	options  Options
	phase    Phase
	target   int
	elapsed  int
	counters Counters
	running  bool
	events   []chan Event
	disposed bool

	// generation identifies the current clock run. Ticks delivered by an
	// earlier run are dropped.
	generation uint64
}

// New creates a controller in the stopped baseline for the given configuration.
func New(config model.SessionConfig, options Options) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	if options.Clock == nil {
		options.Clock = noopClock{}
	}
	if options.Alert == nil {
		options.Alert = noopAlert{}
	}

	controller := &Controller{
		config:  config,
		options: options,
	}
	controller.enterStoppedLocked()
	return controller, nil
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.disposed {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// Config returns the configuration currently in effect.
func (controller *Controller) Config() model.SessionConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}

// Snapshot returns the derived display state.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

// ToggleStartInterrupt starts or resumes a pomodoro, interrupts a running
// pomodoro, or stops a rest.
func (controller *Controller) ToggleStartInterrupt() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch controller.phase {
	case PhaseStopped, PhaseInterrupted:
		controller.phase = PhaseWorking
		controller.elapsed = 0
		controller.target = controller.config.PomodoroSeconds()
		controller.startClockLocked()
	case PhaseWorking:
		controller.phase = PhaseInterrupted
		controller.counters.Interruptions++
		controller.stopClockLocked()
	case PhaseShortResting, PhaseLongResting:
		controller.enterStoppedLocked()
	default:
		panic(InvariantViolation{Phase: controller.phase})
	}

	controller.emitLocked(EventStateChange, "")
}

// ApplyConfig replaces the configuration. While no countdown is running the
// session returns to the stopped baseline; an in-flight countdown keeps its
// target and only later phases use the new values.
func (controller *Controller) ApplyConfig(config model.SessionConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.config = config
	if !controller.running {
		controller.enterStoppedLocked()
	}
	controller.emitLocked(EventStateChange, "")
	return nil
}

// ResetCounters zeroes all counters and returns to the stopped baseline. It is
// rejected while a countdown is running.
func (controller *Controller) ResetCounters() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.running {
		return &NotAllowedError{Command: "reset counters", Phase: controller.phase}
	}
	controller.counters = Counters{}
	controller.enterStoppedLocked()
	controller.emitLocked(EventCountersReset, "")
	return nil
}

// Tick advances the countdown by one second. Ticks outside an active phase
// are ignored.
func (controller *Controller) Tick() {
	controller.deliverTick(0)
}

func (controller *Controller) clockTick(generation uint64) func() {
	return func() {
		controller.deliverTick(generation)
	}
}

// deliverTick runs the alert outside the lock. A zero generation is always
// accepted.
func (controller *Controller) deliverTick(generation uint64) {
	if event, completed := controller.advance(generation); completed {
		controller.options.Alert.PhaseCompleted(event)
	}
}

func (controller *Controller) advance(generation uint64) (Event, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if generation != 0 && generation != controller.generation {
		return Event{}, false
	}
	if !controller.phase.Active() {
		return Event{}, false
	}

	controller.elapsed++
	if controller.elapsed < controller.target {
		controller.emitLocked(EventProgress, "")
		return Event{}, false
	}

	completed := controller.phase
	controller.elapsed = 0
	switch completed {
	case PhaseWorking:
		controller.counters.Pomodoros++
		if controller.counters.Pomodoros%controller.config.PomodorosPerCycle == 0 {
			controller.phase = PhaseLongResting
			controller.target = controller.config.LongRestSeconds()
		} else {
			controller.phase = PhaseShortResting
			controller.target = controller.config.ShortRestSeconds()
		}
	case PhaseShortResting:
		controller.counters.ShortRests++
		controller.phase = PhaseWorking
		controller.target = controller.config.PomodoroSeconds()
	case PhaseLongResting:
		controller.counters.LongRests++
		controller.phase = PhaseWorking
		controller.target = controller.config.PomodoroSeconds()
	default:
		panic(InvariantViolation{Phase: completed})
	}

	completedEvent := controller.emitLocked(EventPhaseCompleted, completed)
	controller.emitLocked(EventStateChange, "")
	return completedEvent, true
}

// Dispose stops the clock and closes observers.
func (controller *Controller) Dispose() {
	controller.mu.Lock()
	if controller.disposed {
		controller.mu.Unlock()
		return
	}
	controller.disposed = true
	controller.stopClockLocked()
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) enterStoppedLocked() {
	controller.phase = PhaseStopped
	controller.elapsed = 0
	controller.target = controller.config.PomodoroSeconds()
	controller.stopClockLocked()
}

func (controller *Controller) startClockLocked() {
	if controller.running {
		return
	}
	controller.running = true
	controller.generation++
	controller.options.Clock.Start(controller.clockTick(controller.generation))
}

func (controller *Controller) stopClockLocked() {
	if !controller.running {
		return
	}
	controller.running = false
	controller.generation++
	controller.options.Clock.Stop()
}

func (controller *Controller) snapshotLocked() Snapshot {
	remaining := controller.target - controller.elapsed
	return Snapshot{
		Phase:          controller.phase,
		TargetSeconds:  controller.target,
		ElapsedSeconds: controller.elapsed,
		Counters:       controller.counters,
		Running:        controller.running,

		RemainingSeconds: remaining,
		RemainingText:    FormatRemaining(remaining),
		ProgressFraction: ProgressFraction(controller.elapsed, controller.target, controller.config.InvertProgress),
		CountersText:     FormatCounters(controller.counters),

		StartButtonLabel:       startButtonLabel(controller.phase),
		ConfigureButtonEnabled: !controller.running,
		ResetButtonEnabled:     !controller.running && controller.counters.Any(),
	}
}

func (controller *Controller) emitLocked(eventType EventType, completed Phase) Event {
	event := Event{
		Type:      eventType,
		Completed: completed,
		Snapshot:  controller.snapshotLocked(),
		At:        time.Now(),
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
	return event
}
