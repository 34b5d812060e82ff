package main

import (
	"fmt"
	"log"

	"passata/internal/storage"
	"passata/internal/ui/preferences"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type overrideFlags struct {
	pomodoro    int
	shortRest   int
	longRest    int
	perCycle    int
	invert      bool
	soundOutput string
	alertSound  string
	notify      bool
}

func bindOverrideFlags(cmd *cobra.Command, flags *overrideFlags) {
	persistent := cmd.PersistentFlags()
	persistent.IntVar(&flags.pomodoro, "pomodoro", 0, "pomodoro length in minutes")
	persistent.IntVar(&flags.shortRest, "short-rest", 0, "short rest length in minutes")
	persistent.IntVar(&flags.longRest, "long-rest", 0, "long rest length in minutes")
	persistent.IntVar(&flags.perCycle, "cycle", 0, "pomodoros before a long rest")
	persistent.BoolVar(&flags.invert, "invert-progress", false, "empty the progress bar instead of filling it")
	persistent.StringVar(&flags.soundOutput, "sound-output", "", "alert output: command or none")
	persistent.StringVar(&flags.alertSound, "alert-sound", "", "path to the alert sound file")
	persistent.BoolVar(&flags.notify, "notify", true, "show a desktop notification when a phase ends")
}

// loadSettings reads the stored settings and applies any flags set on cmd.
func loadSettings(cmd *cobra.Command, flags *overrideFlags) (preferences.Settings, error) {
	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	settings = applyOverrides(cmd, flags, settings)
	if err := settings.SessionConfig().Validate(); err != nil {
		return settings, err
	}
	switch settings.SoundOutput {
	case preferences.SoundOutputCommand, preferences.SoundOutputNone:
	default:
		return settings, fmt.Errorf("unknown sound output %q", settings.SoundOutput)
	}
	return settings, nil
}

func applyOverrides(cmd *cobra.Command, flags *overrideFlags, settings preferences.Settings) preferences.Settings {
	changed := cmd.Flags().Changed
	if changed("pomodoro") {
		settings.PomodoroMinutes = flags.pomodoro
	}
	if changed("short-rest") {
		settings.ShortRestMinutes = flags.shortRest
	}
	if changed("long-rest") {
		settings.LongRestMinutes = flags.longRest
	}
	if changed("cycle") {
		settings.PomodorosPerCycle = flags.perCycle
	}
	if changed("invert-progress") {
		settings.InvertProgress = flags.invert
	}
	if changed("sound-output") {
		settings.SoundOutput = flags.soundOutput
	}
	if changed("alert-sound") {
		settings.AlertSound = flags.alertSound
	}
	if changed("notify") {
		settings.Notify = flags.notify
	}
	return settings
}

func newConfigCmd(flags *overrideFlags) *cobra.Command {
	configCmd := &cobra.Command{Use: "config", Short: "Inspect or change stored settings"}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the settings in effect",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			return printSettings(cmd, settings)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:     "set",
		Short:   "Store the values given as flags",
		Example: "  passata config set --pomodoro 50 --short-rest 10 --cycle 2",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			if err := storage.SaveSettings(appName, settings); err != nil {
				return err
			}
			return printSettings(cmd, settings)
		},
	})

	return configCmd
}

func printSettings(cmd *cobra.Command, settings preferences.Settings) error {
	path, err := storage.SettingsPath(appName)
	if err != nil {
		return err
	}
	view := map[string]any{
		"file":                path,
		"pomodoro_minutes":    settings.PomodoroMinutes,
		"short_rest_minutes":  settings.ShortRestMinutes,
		"long_rest_minutes":   settings.LongRestMinutes,
		"pomodoros_per_cycle": settings.PomodorosPerCycle,
		"invert_progress":     settings.InvertProgress,
		"sound_output":        settings.SoundOutput,
		"alert_sound":         settings.AlertSound,
		"notify":              settings.Notify,
	}
	out, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
