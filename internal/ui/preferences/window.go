package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the configure page.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	onCancel    func()
	pomodoro    *widget.Slider
	shortRest   *widget.Slider
	longRest    *widget.Slider
	perCycle    *widget.Slider
	labels      map[string]*widget.Label
	invert      *widget.Check
	notify      *widget.Check
	soundOutput *widget.Select
	alertSound  *widget.Entry
	okButton    *widget.Button
	cancel      *widget.Button
}

// New creates a configure window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Passata Settings")

	labels := map[string]*widget.Label{
		"pomodoro":  widget.NewLabel(""),
		"shortRest": widget.NewLabel(""),
		"longRest":  widget.NewLabel(""),
		"perCycle":  widget.NewLabel(""),
	}

	pomodoro := newCountSlider(MaxPomodoroMinutes, labels["pomodoro"], MinutesLabel)
	shortRest := newCountSlider(MaxShortRestMinutes, labels["shortRest"], MinutesLabel)
	longRest := newCountSlider(MaxLongRestMinutes, labels["longRest"], MinutesLabel)
	perCycle := newCountSlider(MaxPomodorosPerCycle, labels["perCycle"], PomodorosLabel)

	invert := widget.NewCheck("Empty the progress bar instead of filling it", nil)
	notify := widget.NewCheck("Show a notification when a phase ends", nil)
	soundOutput := widget.NewSelect([]string{SoundOutputCommand, SoundOutputNone}, nil)
	alertSound := widget.NewEntry()
	alertSound.SetPlaceHolder("built-in ping")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Pomodoro"), container.NewBorder(nil, nil, nil, labels["pomodoro"], pomodoro),
		widget.NewLabel("Short rest"), container.NewBorder(nil, nil, nil, labels["shortRest"], shortRest),
		widget.NewLabel("Long rest"), container.NewBorder(nil, nil, nil, labels["longRest"], longRest),
		widget.NewLabel("Long rest after"), container.NewBorder(nil, nil, nil, labels["perCycle"], perCycle),
		invert,
		widget.NewLabelWithStyle("Alert", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Sound output"), soundOutput),
		container.NewBorder(nil, nil, widget.NewLabel("Sound file"), nil, alertSound),
		notify,
	)

	okButton := widget.NewButton("OK", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(okButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 520))

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		pomodoro:    pomodoro,
		shortRest:   shortRest,
		longRest:    longRest,
		perCycle:    perCycle,
		labels:      labels,
		invert:      invert,
		notify:      notify,
		soundOutput: soundOutput,
		alertSound:  alertSound,
		okButton:    okButton,
		cancel:      cancelButton,
	}
	prefs.UpdateSettings(settings)

	okButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the configure window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler run when editing is abandoned.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	setCountSlider(prefs.pomodoro, MaxPomodoroMinutes, settings.PomodoroMinutes)
	setCountSlider(prefs.shortRest, MaxShortRestMinutes, settings.ShortRestMinutes)
	setCountSlider(prefs.longRest, MaxLongRestMinutes, settings.LongRestMinutes)
	setCountSlider(prefs.perCycle, MaxPomodorosPerCycle, settings.PomodorosPerCycle)
	prefs.labels["pomodoro"].SetText(MinutesLabel(settings.PomodoroMinutes))
	prefs.labels["shortRest"].SetText(MinutesLabel(settings.ShortRestMinutes))
	prefs.labels["longRest"].SetText(MinutesLabel(settings.LongRestMinutes))
	prefs.labels["perCycle"].SetText(PomodorosLabel(settings.PomodorosPerCycle))
	prefs.invert.SetChecked(settings.InvertProgress)
	prefs.notify.SetChecked(settings.Notify)
	prefs.soundOutput.SetSelected(settings.SoundOutput)
	prefs.alertSound.SetText(settings.AlertSound)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.PomodoroMinutes = int(prefs.pomodoro.Value)
	settings.ShortRestMinutes = int(prefs.shortRest.Value)
	settings.LongRestMinutes = int(prefs.longRest.Value)
	settings.PomodorosPerCycle = int(prefs.perCycle.Value)
	settings.InvertProgress = prefs.invert.Checked
	settings.Notify = prefs.notify.Checked
	if prefs.soundOutput.Selected != "" {
		settings.SoundOutput = prefs.soundOutput.Selected
	}
	settings.AlertSound = prefs.alertSound.Text

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func newCountSlider(upper int, label *widget.Label, format func(int) string) *widget.Slider {
	slider := widget.NewSlider(1, float64(upper))
	slider.Step = 1
	slider.OnChanged = func(value float64) {
		label.SetText(format(int(value)))
	}
	return slider
}

// setCountSlider widens the slider when a stored value lies beyond its usual
// range, so saving without edits keeps the value.
func setCountSlider(slider *widget.Slider, upper, value int) {
	slider.Max = float64(max(upper, value))
	slider.Refresh()
	slider.SetValue(float64(value))
}
