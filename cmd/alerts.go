package main

import (
	"log"
	"sync"

	"passata/internal/core/session"
	"passata/internal/platform"
	"passata/internal/ui/preferences"
	"passata/resources"
)

// alertRouter dispatches completions according to the current settings.
type alertRouter struct {
	mu       sync.Mutex
	sound    session.AlertPlayer
	notifier session.AlertPlayer
	notify   bool
}

func newAlertRouter(settings preferences.Settings, notifier session.AlertPlayer) *alertRouter {
	router := &alertRouter{notifier: notifier}
	router.Update(settings)
	return router
}

// Update switches the sound and notification outputs.
func (router *alertRouter) Update(settings preferences.Settings) {
	var sound session.AlertPlayer
	if settings.SoundOutput == preferences.SoundOutputCommand {
		path, err := alertSoundPath(settings)
		if err != nil {
			log.Printf("alert sound: %v", err)
		} else {
			sound = platform.NewSoundPlayer(path)
		}
	}

	router.mu.Lock()
	router.sound = sound
	router.notify = settings.Notify
	router.mu.Unlock()
}

func (router *alertRouter) PhaseCompleted(event session.Event) {
	router.mu.Lock()
	group := platform.AlertGroup{router.sound}
	if router.notify {
		group = append(group, router.notifier)
	}
	router.mu.Unlock()

	group.PhaseCompleted(event)
}

func alertSoundPath(settings preferences.Settings) (string, error) {
	if settings.AlertSound != "" {
		return settings.AlertSound, nil
	}
	data, err := resources.Sound(resources.AlertSoundName)
	if err != nil {
		return "", err
	}
	return platform.WriteCacheFile(appName, resources.AlertSoundName, data)
}
