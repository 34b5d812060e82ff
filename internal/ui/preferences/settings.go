package preferences

import (
	"fmt"

	"passata/internal/core/model"
)

// Sound output modes.
const (
	SoundOutputCommand = "command"
	SoundOutputNone    = "none"
)

// Slider bounds for the configure page.
const (
	MaxPomodoroMinutes   = 90
	MaxShortRestMinutes  = 30
	MaxLongRestMinutes   = 60
	MaxPomodorosPerCycle = 12
)

// Settings defines editable user preferences.
type Settings struct {
	PomodoroMinutes   int
	ShortRestMinutes  int
	LongRestMinutes   int
	PomodorosPerCycle int
	InvertProgress    bool

	SoundOutput string
	AlertSound  string
	Notify      bool
}

// DefaultSettings returns default settings for Passata.
func DefaultSettings() Settings {
	config := model.DefaultSessionConfig()
	return Settings{
		PomodoroMinutes:   config.PomodoroMinutes,
		ShortRestMinutes:  config.ShortRestMinutes,
		LongRestMinutes:   config.LongRestMinutes,
		PomodorosPerCycle: config.PomodorosPerCycle,
		InvertProgress:    config.InvertProgress,
		SoundOutput:       SoundOutputCommand,
		Notify:            true,
	}
}

// SessionConfig converts settings to a SessionConfig.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		PomodoroMinutes:   settings.PomodoroMinutes,
		ShortRestMinutes:  settings.ShortRestMinutes,
		LongRestMinutes:   settings.LongRestMinutes,
		PomodorosPerCycle: settings.PomodorosPerCycle,
		InvertProgress:    settings.InvertProgress,
	}
}

// MinutesLabel renders a duration slider value.
func MinutesLabel(count int) string {
	if count == 1 {
		return "1 minute."
	}
	return fmt.Sprintf("%d minutes.", count)
}

// PomodorosLabel renders the cycle length slider value.
func PomodorosLabel(count int) string {
	if count == 1 {
		return "1 pomodoro."
	}
	return fmt.Sprintf("%d pomodoros.", count)
}
