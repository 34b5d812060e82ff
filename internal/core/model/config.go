package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a rejected SessionConfig.
var ErrInvalidConfig = errors.New("invalid session config")

// InvalidConfigError names the offending field of a rejected SessionConfig.
type InvalidConfigError struct {
	Field string
	Value int
}

func (err *InvalidConfigError) Error() string {
	return fmt.Sprintf("%v: %s must be positive, got %d", ErrInvalidConfig, err.Field, err.Value)
}

func (err *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// SessionConfig contains the durations and cycle length of a pomodoro session.
// It is applied as a whole; the controller never mutates it.
type SessionConfig struct {
	PomodoroMinutes   int
	ShortRestMinutes  int
	LongRestMinutes   int
	PomodorosPerCycle int
	InvertProgress    bool
}

// DefaultSessionConfig returns the classic 25/5/15 minute schedule with a
// long rest after every fourth pomodoro.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PomodoroMinutes:   25,
		ShortRestMinutes:  5,
		LongRestMinutes:   15,
		PomodorosPerCycle: 4,
	}
}

// Validate reports the first non-positive duration or cycle length.
func (config SessionConfig) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"pomodoro minutes", config.PomodoroMinutes},
		{"short rest minutes", config.ShortRestMinutes},
		{"long rest minutes", config.LongRestMinutes},
		{"pomodoros per cycle", config.PomodorosPerCycle},
	}
	for _, field := range fields {
		if field.value <= 0 {
			return &InvalidConfigError{Field: field.name, Value: field.value}
		}
	}
	return nil
}

// PomodoroSeconds returns the work interval length in seconds.
func (config SessionConfig) PomodoroSeconds() int {
	return config.PomodoroMinutes * 60
}

// ShortRestSeconds returns the short rest length in seconds.
func (config SessionConfig) ShortRestSeconds() int {
	return config.ShortRestMinutes * 60
}

// LongRestSeconds returns the long rest length in seconds.
func (config SessionConfig) LongRestSeconds() int {
	return config.LongRestMinutes * 60
}
