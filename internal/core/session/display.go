package session

import "fmt"

// Counters holds the cumulative session tallies.
type Counters struct {
	Pomodoros     int
	ShortRests    int
	LongRests     int
	Interruptions int
}

// Any reports whether at least one counter is non-zero.
func (counters Counters) Any() bool {
	return counters.Pomodoros > 0 || counters.ShortRests > 0 ||
		counters.LongRests > 0 || counters.Interruptions > 0
}

// Snapshot is the display-ready view of the session, recomputed after every
// command and tick.
type Snapshot struct {
	Phase          Phase
	TargetSeconds  int
	ElapsedSeconds int
	Counters       Counters
	Running        bool

	RemainingSeconds int
	RemainingText    string
	ProgressFraction int
	CountersText     string

	StartButtonLabel       string
	ConfigureButtonEnabled bool
	ResetButtonEnabled     bool
}

// FormatRemaining renders seconds as "m:ss".
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ProgressFraction returns the progress bar value between 0 and 100. The bar
// fills as time elapses unless invert is set, in which case it empties.
func ProgressFraction(elapsed, target int, invert bool) int {
	if target <= 0 || elapsed <= 0 {
		return baselineProgress(invert)
	}
	remaining := target - elapsed
	if remaining < 0 {
		remaining = 0
	}
	percent := (100*remaining + target - 1) / target
	if invert {
		return percent
	}
	return 100 - percent
}

func baselineProgress(invert bool) int {
	if invert {
		return 100
	}
	return 0
}

// FormatCounters renders the counters as a single sentence.
func FormatCounters(counters Counters) string {
	return fmt.Sprintf("%s, %s, %s and %s.",
		plural(counters.Pomodoros, "full pomodoro", "full pomodoros"),
		plural(counters.ShortRests, "short pause", "short pauses"),
		plural(counters.LongRests, "long break", "long breaks"),
		plural(counters.Interruptions, "interruption", "interruptions"),
	)
}

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", count, pluralForm)
}

func startButtonLabel(phase Phase) string {
	switch phase {
	case PhaseStopped:
		return "Start"
	case PhaseWorking:
		return "Interrupt"
	case PhaseInterrupted:
		return "Resume"
	case PhaseShortResting, PhaseLongResting:
		return "Stop"
	default:
		panic(InvariantViolation{Phase: phase})
	}
}

// Title is the human readable name of the phase.
func (phase Phase) Title() string {
	switch phase {
	case PhaseStopped:
		return "Ready"
	case PhaseWorking:
		return "Pomodoro"
	case PhaseShortResting:
		return "Short rest"
	case PhaseLongResting:
		return "Long rest"
	case PhaseInterrupted:
		return "Interrupted"
	default:
		panic(InvariantViolation{Phase: phase})
	}
}

// CompletionMessage describes an overflow by the phase it led into.
func CompletionMessage(next Phase) string {
	switch next {
	case PhaseShortResting:
		return "Pomodoro done. Take a short rest."
	case PhaseLongResting:
		return "Pomodoro done. Take a long rest."
	default:
		return "Rest is over. Back to work."
	}
}
