package main

import (
	"fmt"

	"passata/internal/core/session"
	"passata/internal/tui"
	"passata/internal/ui/preferences"
)

func runTUI(settings preferences.Settings) error {
	controller, err := session.New(settings.SessionConfig(), session.Options{
		Clock: session.NewTickerClock(0),
		Alert: newAlertRouter(settings, nil),
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer controller.Dispose()

	return tui.Run(controller)
}
