package timerwindow

import (
	"image/color"

	"passata/internal/core/session"
	"passata/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines main page action handlers.
type Callbacks struct {
	OnStartInterrupt func()
	OnConfigure      func()
	OnResetCounters  func()
	OnQuit           func()
}

// Window renders session snapshots on the main page.
type Window struct {
	window          fyne.Window
	indicator       *canvas.Image
	phaseLabel      *canvas.Text
	progress        *widget.ProgressBar
	countersLabel   *widget.Label
	startButton     *widget.Button
	configureButton *widget.Button
	resetButton     *widget.Button
	quitButton      *widget.Button
	callbacks       Callbacks
	remainingText   string
}

// New creates the main page.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("Passata")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	indicator := canvas.NewImageFromResource(resources.MustLogo(resources.LogoGreen))
	indicator.FillMode = canvas.ImageFillContain
	indicator.SetMinSize(fyne.NewSize(96, 96))

	phaseLabel := canvas.NewText("", color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 16

	countersLabel := widget.NewLabel("")
	countersLabel.Wrapping = fyne.TextWrapWord
	countersLabel.Alignment = fyne.TextAlignCenter

	page := &Window{
		window:        window,
		indicator:     indicator,
		phaseLabel:    phaseLabel,
		countersLabel: countersLabel,
		callbacks:     callbacks,
	}

	page.progress = widget.NewProgressBar()
	page.progress.Max = 100
	page.progress.TextFormatter = func() string {
		return page.remainingText
	}

	page.startButton = widget.NewButton("Start", func() {
		if page.callbacks.OnStartInterrupt != nil {
			page.callbacks.OnStartInterrupt()
		}
	})
	page.startButton.Importance = widget.HighImportance
	page.configureButton = widget.NewButton("Configure", func() {
		if page.callbacks.OnConfigure != nil {
			page.callbacks.OnConfigure()
		}
	})
	page.resetButton = widget.NewButton("Reset counters", func() {
		if page.callbacks.OnResetCounters != nil {
			page.callbacks.OnResetCounters()
		}
	})
	page.quitButton = widget.NewButton("Quit", func() {
		if page.callbacks.OnQuit != nil {
			page.callbacks.OnQuit()
		}
	})

	buttons := container.NewHBox(page.configureButton, page.resetButton, layout.NewSpacer(), page.quitButton)
	content := container.NewVBox(
		container.NewCenter(indicator),
		phaseLabel,
		page.progress,
		page.startButton,
		countersLabel,
		layout.NewSpacer(),
		buttons,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 360))

	return page
}

// Show displays the main page.
func (page *Window) Show() {
	page.window.Show()
	page.window.RequestFocus()
}

// Hide hides the main page.
func (page *Window) Hide() {
	page.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (page *Window) SetCloseIntercept(handler func()) {
	page.window.SetCloseIntercept(handler)
}

// Render updates every widget from snapshot. Safe to call from any goroutine.
func (page *Window) Render(snapshot session.Snapshot) {
	fyne.Do(func() {
		page.renderUnsafe(snapshot)
	})
}

func (page *Window) renderUnsafe(snapshot session.Snapshot) {
	page.remainingText = snapshot.RemainingText
	page.progress.SetValue(float64(snapshot.ProgressFraction))

	page.phaseLabel.Text = snapshot.Phase.Title()
	page.phaseLabel.Refresh()
	page.indicator.Resource = resources.MustLogo(IndicatorLogo(snapshot.Phase))
	page.indicator.Refresh()

	page.countersLabel.SetText(snapshot.CountersText)

	page.startButton.SetText(snapshot.StartButtonLabel)
	setEnabled(page.configureButton, snapshot.ConfigureButtonEnabled)
	setEnabled(page.resetButton, snapshot.ResetButtonEnabled)
}

// IndicatorLogo returns the pomodoro colour for phase: red while working,
// yellow when interrupted and green otherwise.
func IndicatorLogo(phase session.Phase) string {
	switch phase {
	case session.PhaseWorking:
		return resources.LogoRed
	case session.PhaseInterrupted:
		return resources.LogoYellow
	default:
		return resources.LogoGreen
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
