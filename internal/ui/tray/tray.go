package tray

import (
	"fmt"

	"passata/internal/core/session"

	"fyne.io/fyne/v2"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow           func()
	OnStartInterrupt func()
	OnResetCounters  func()
	OnPreferences    func()
	OnQuit           func()
}

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	host        Host
	notify      func(*fyne.Notification)
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	resetItem   *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks. notify may be nil.
func New(host Host, notify func(*fyne.Notification), callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		notify:    notify,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: ready", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStartInterrupt != nil {
			manager.callbacks.OnStartInterrupt()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset counters", func() {
		if manager.callbacks.OnResetCounters != nil {
			manager.callbacks.OnResetCounters()
		}
	})
	manager.resetItem.Disabled = true

	manager.prefsItem = fyne.NewMenuItem("Configure", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	manager.refreshMenu()
	return manager
}

// Render updates tray items from snapshot.
func (manager *Manager) Render(snapshot session.Snapshot) {
	manager.statusLabel = StatusText(snapshot)
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.startItem.Label = snapshot.StartButtonLabel
	manager.resetItem.Disabled = !snapshot.ResetButtonEnabled
	manager.prefsItem.Disabled = !snapshot.ConfigureButtonEnabled
	manager.refreshMenu()
}

// PhaseCompleted posts a desktop notification for the finished phase.
func (manager *Manager) PhaseCompleted(event session.Event) {
	if manager.notify == nil {
		return
	}
	manager.notify(fyne.NewNotification("Passata", session.CompletionMessage(event.Snapshot.Phase)))
}

// StatusText summarizes snapshot in a single line.
func StatusText(snapshot session.Snapshot) string {
	switch snapshot.Phase {
	case session.PhaseWorking:
		return "pomodoro, " + snapshot.RemainingText + " left"
	case session.PhaseShortResting:
		return "short rest, " + snapshot.RemainingText + " left"
	case session.PhaseLongResting:
		return "long rest, " + snapshot.RemainingText + " left"
	case session.PhaseInterrupted:
		return "interrupted"
	default:
		return "ready"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(fyne.NewMenu("Passata",
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.startItem,
		manager.resetItem,
		manager.prefsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
