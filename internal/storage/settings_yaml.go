package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"passata/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	PomodoroMinutes   int    `yaml:"pomodoro_minutes"`
	ShortRestMinutes  int    `yaml:"short_rest_minutes"`
	LongRestMinutes   int    `yaml:"long_rest_minutes"`
	PomodorosPerCycle int    `yaml:"pomodoros_per_cycle"`
	InvertProgress    bool   `yaml:"invert_progress"`
	SoundOutput       string `yaml:"sound_output,omitempty"`
	AlertSound        string `yaml:"alert_sound,omitempty"`
	Notify            *bool  `yaml:"notify,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from the given YAML file.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to the given YAML file.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	notify := settings.Notify
	fileData := yamlSettings{
		PomodoroMinutes:   settings.PomodoroMinutes,
		ShortRestMinutes:  settings.ShortRestMinutes,
		LongRestMinutes:   settings.LongRestMinutes,
		PomodorosPerCycle: settings.PomodorosPerCycle,
		InvertProgress:    settings.InvertProgress,
		SoundOutput:       settings.SoundOutput,
		AlertSound:        settings.AlertSound,
		Notify:            &notify,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.PomodoroMinutes > 0 {
		settings.PomodoroMinutes = fileData.PomodoroMinutes
	}
	if fileData.ShortRestMinutes > 0 {
		settings.ShortRestMinutes = fileData.ShortRestMinutes
	}
	if fileData.LongRestMinutes > 0 {
		settings.LongRestMinutes = fileData.LongRestMinutes
	}
	if fileData.PomodorosPerCycle > 0 {
		settings.PomodorosPerCycle = fileData.PomodorosPerCycle
	}

	switch fileData.SoundOutput {
	case preferences.SoundOutputCommand, preferences.SoundOutputNone:
		settings.SoundOutput = fileData.SoundOutput
	}
	if fileData.Notify != nil {
		settings.Notify = *fileData.Notify
	}

	settings.InvertProgress = fileData.InvertProgress
	settings.AlertSound = fileData.AlertSound
}
