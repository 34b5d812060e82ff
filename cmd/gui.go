package main

import (
	"errors"
	"log"

	"passata/internal/core/session"
	"passata/internal/platform"
	"passata/internal/storage"
	"passata/internal/ui/preferences"
	"passata/internal/ui/timerwindow"
	"passata/internal/ui/tray"
	"passata/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runGUI(settings preferences.Settings) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return platform.ActivateRunningInstance(appName)
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.passata.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoRed))

	var controller *session.Controller
	var trayManager *tray.Manager
	var mainPage *timerwindow.Window
	var prefsWindow *preferences.Window

	quit := func() {
		if controller != nil {
			controller.Dispose()
		}
		fyneApp.Quit()
	}

	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, fyneApp.SendNotification, tray.Callbacks{
			OnShow:           func() { mainPage.Show() },
			OnStartInterrupt: func() { controller.ToggleStartInterrupt() },
			OnResetCounters:  func() { resetCounters(controller) },
			OnPreferences:    func() { prefsWindow.Show() },
			OnQuit:           quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.LogoGreen))
	}

	var notifier session.AlertPlayer
	if trayManager != nil {
		notifier = trayManager
	}
	alerts := newAlertRouter(settings, notifier)

	controller, err = session.New(settings.SessionConfig(), session.Options{
		Clock: session.NewTickerClock(0),
		Alert: alerts,
	})
	if err != nil {
		return err
	}

	mainPage = timerwindow.New(fyneApp, timerwindow.Callbacks{
		OnStartInterrupt: controller.ToggleStartInterrupt,
		OnConfigure:      func() { prefsWindow.Show() },
		OnResetCounters:  func() { resetCounters(controller) },
		OnQuit:           quit,
	})
	if hasTray {
		mainPage.SetCloseIntercept(mainPage.Hide)
	} else {
		mainPage.SetCloseIntercept(quit)
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := controller.ApplyConfig(updated.SessionConfig()); err != nil {
			log.Printf("apply config: %v", err)
			prefsWindow.UpdateSettings(settings)
			return
		}
		settings = updated
		alerts.Update(settings)
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	render := func(snapshot session.Snapshot) {
		mainPage.Render(snapshot)
		if trayManager != nil {
			fyne.Do(func() {
				trayManager.Render(snapshot)
				desktopApp.SetSystemTrayIcon(resources.MustLogo(timerwindow.IndicatorLogo(snapshot.Phase)))
			})
		}
	}

	prefsWindow.SetOnCancel(func() {
		render(controller.Snapshot())
		fyne.Do(mainPage.Show)
	})

	go renderEvents(controller.Subscribe(16), controller, render)
	go guard.OnActivate(func() {
		fyne.Do(mainPage.Show)
	})

	render(controller.Snapshot())
	mainPage.Show()
	fyneApp.Run()
	controller.Dispose()
	return nil
}

// renderEvents redraws from the controller's current snapshot on every event,
// so an event dropped from a full buffer leaves no stale display.
func renderEvents(events <-chan session.Event, source interface{ Snapshot() session.Snapshot }, render func(session.Snapshot)) {
	for range events {
		render(source.Snapshot())
	}
}

func resetCounters(controller *session.Controller) {
	if err := controller.ResetCounters(); err != nil {
		log.Printf("reset counters: %v", err)
	}
}
