package tui

import (
	"errors"
	"strings"

	"passata/internal/core/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the command surface the TUI drives.
type Controller interface {
	ToggleStartInterrupt()
	ResetCounters() error
	Snapshot() session.Snapshot
}

type eventMsg session.Event

type eventsClosedMsg struct{}

var (
	workingStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D63031"))
	restingStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2EA043"))
	interruptedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8BE42"))
	timeStyle        = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	messageStyle     = lipgloss.NewStyle().Italic(true)
)

// Model is the root Bubble Tea model.
type Model struct {
	controller Controller
	events     <-chan session.Event
	keys       KeyMap
	progress   progress.Model
	snapshot   session.Snapshot
	message    string
	width      int
}

// New creates the root model. events may be nil when the caller refreshes
// the model itself.
func New(controller Controller, events <-chan session.Event) Model {
	return Model{
		controller: controller,
		events:     events,
		keys:       DefaultKeyMap(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		snapshot:   controller.Snapshot(),
	}
}

// Init starts listening for controller events.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, msg.Width-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		m.snapshot = m.controller.Snapshot()
		if msg.Type == session.EventPhaseCompleted {
			m.message = session.CompletionMessage(msg.Snapshot.Phase)
		}
		return m, m.waitForEvent()

	case eventsClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.controller.ToggleStartInterrupt()
		m.message = ""

	case key.Matches(msg, m.keys.Reset):
		if err := m.controller.ResetCounters(); err != nil {
			if errors.Is(err, session.ErrNotAllowedInState) {
				m.message = "Counters can only be reset while the timer is stopped."
			} else {
				m.message = err.Error()
			}
		} else {
			m.message = "Counters reset."
		}
	}
	m.snapshot = m.controller.Snapshot()
	return m, nil
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

// View renders the model.
func (m Model) View() string {
	snapshot := m.snapshot
	var b strings.Builder

	b.WriteString(phaseStyle(snapshot.Phase).Render("● " + snapshot.Phase.Title()))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(float64(snapshot.ProgressFraction) / 100))
	b.WriteString(timeStyle.Render(snapshot.RemainingText))
	b.WriteString("\n\n")
	b.WriteString(snapshot.CountersText)
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpLine() string {
	parts := []string{"space " + strings.ToLower(m.snapshot.StartButtonLabel)}
	if m.snapshot.ResetButtonEnabled {
		parts = append(parts, m.keys.Reset.Help().Key+" "+m.keys.Reset.Help().Desc)
	}
	parts = append(parts, m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc)
	return strings.Join(parts, " • ")
}

func phaseStyle(phase session.Phase) lipgloss.Style {
	switch phase {
	case session.PhaseWorking:
		return workingStyle
	case session.PhaseInterrupted:
		return interruptedStyle
	default:
		return restingStyle
	}
}
