// Package ui provides the terminal user interface using Bubble Tea.
//
// The UI is a thin collaborator over the fetch orchestrator: it gathers
// a date (and rover), kicks off fetch cycles, and renders whatever the
// orchestrator currently holds plus the active notification.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skygaze/skygaze/internal/fetch"
	"github.com/skygaze/skygaze/internal/notify"
	"github.com/skygaze/skygaze/internal/skygaze"
)

// Msg types for Bubble Tea
type (
	// spinTickMsg advances the loading spinner.
	spinTickMsg time.Time

	// fetchDoneMsg signals that a fetch cycle finished.
	fetchDoneMsg struct {
		feature skygaze.Feature
		state   fetch.State
	}

	// clearDoneMsg signals that a gallery clear finished.
	clearDoneMsg struct {
		feature skygaze.Feature
	}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("99")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	notifStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var tabNames = map[skygaze.Feature]string{
	skygaze.FeatureEPIC: "EPIC Earth",
	skygaze.FeatureMars: "Mars Rover",
	skygaze.FeatureAPOD: "Picture of the Day",
}

// Model is the root Bubble Tea model.
type Model struct {
	orch   *fetch.Orchestrator
	center *notify.Center

	active   int // index into skygaze.Features
	date     string
	roverIdx int
	spin     int
	width    int
	height   int
}

// New creates the root UI model.
func New(orch *fetch.Orchestrator, center *notify.Center) Model {
	return Model{
		orch:   orch,
		center: center,
	}
}

// Init kicks off the spinner and, matching the app's long-standing
// behavior, fetches today's picture of the day right away.
func (m Model) Init() tea.Cmd {
	return tea.Batch(spinTick(), m.runFetch(skygaze.FeatureAPOD, fetch.Params{}))
}

func spinTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return spinTickMsg(t)
	})
}

func (m Model) feature() skygaze.Feature {
	return skygaze.Features[m.active]
}

func (m Model) rover() string {
	return skygaze.Rovers[m.roverIdx].Name
}

// The fetch runs off the UI goroutine; the orchestrator's request token
// handles any overlap with a newer run for the same feature.
func (m Model) runFetch(f skygaze.Feature, p fetch.Params) tea.Cmd {
	return func() tea.Msg {
		state := m.orch.Run(context.Background(), f, p)

		return fetchDoneMsg{feature: f, state: state}
	}
}

func (m Model) runClear(f skygaze.Feature) tea.Cmd {
	return func() tea.Msg {
		_ = m.orch.Clear(context.Background(), f)

		return clearDoneMsg{feature: f}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinTickMsg:
		m.spin++
		return m, spinTick()

	case fetchDoneMsg, clearDoneMsg:
		// Nothing to update: the orchestrator and the notification
		// center already hold the outcome; the next render reads them.
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right":
		m.active = (m.active + 1) % len(skygaze.Features)
		return m, nil

	case "shift+tab", "left":
		m.active = (m.active + len(skygaze.Features) - 1) % len(skygaze.Features)
		return m, nil

	case "r":
		if m.feature() == skygaze.FeatureMars {
			m.roverIdx = (m.roverIdx + 1) % len(skygaze.Rovers)
		}
		return m, nil

	case "c":
		return m, m.runClear(m.feature())

	case "esc":
		m.center.Dismiss()
		return m, nil

	case "enter":
		p := fetch.Params{Date: m.date}
		if m.feature() == skygaze.FeatureMars {
			p.Rover = m.rover()
		}
		return m, m.runFetch(m.feature(), p)

	case "backspace":
		if len(m.date) > 0 {
			m.date = m.date[:len(m.date)-1]
		}
		return m, nil
	}

	// Date input accepts digits and dashes only, so letters stay free
	// for the key bindings above.
	if s := msg.String(); len(s) == 1 && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) && len(m.date) < 10 {
		m.date += s
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("skygaze"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n\n")

	if n := m.center.Current(); n.Visible {
		b.WriteString(notifStyle.Render(n.Message))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: switch  enter: fetch  r: rover  c: clear  esc: dismiss  q: quit"))

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(skygaze.Features))
	for i, f := range skygaze.Features {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(tabNames[f]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderForm() string {
	date := m.date
	if date == "" {
		date = "YYYY-MM-DD"
	}

	line := labelStyle.Render("Date: ") + valueStyle.Render(date)
	if m.feature() == skygaze.FeatureMars {
		line += labelStyle.Render("   Rover: ") + valueStyle.Render(skygaze.Rovers[m.roverIdx].DisplayName)
	}
	if m.orch.Loading(m.feature()) {
		line += "  " + spinnerFrames[m.spin%len(spinnerFrames)]
	}

	return line
}

// How many result lines fit before the list gets elided.
const maxListed = 8

func (m Model) renderResults() string {
	switch m.feature() {
	case skygaze.FeatureEPIC:
		return m.renderEpic()
	case skygaze.FeatureMars:
		return m.renderMars()
	default:
		return m.renderApod()
	}
}

func (m Model) renderEpic() string {
	records := m.orch.EpicRecords()
	if len(records) == 0 {
		return labelStyle.Render("No Earth images yet. Pick a date and press enter.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d images\n", len(records))
	for i, r := range records {
		if i == maxListed {
			fmt.Fprintf(&b, "… and %d more\n", len(records)-maxListed)
			break
		}
		fmt.Fprintf(&b, "  %s  lat %.1f lon %.1f  %s\n", r.Identifier, r.Latitude, r.Longitude, r.ImageURL)
	}

	return b.String()
}

func (m Model) renderMars() string {
	photos := m.orch.MarsPhotos()
	if len(photos) == 0 {
		return labelStyle.Render("No rover photos yet. Pick a date, cycle rovers with r, press enter.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d photos\n", len(photos))
	for i, p := range photos {
		if i == maxListed {
			fmt.Fprintf(&b, "… and %d more\n", len(photos)-maxListed)
			break
		}
		fmt.Fprintf(&b, "  #%s sol %d  %s  %s\n", p.ID, p.Sol, p.CameraName, p.EarthDate)
	}

	return b.String()
}

func (m Model) renderApod() string {
	entry, ok := m.orch.Apod()
	if !ok {
		return labelStyle.Render("No picture yet. Press enter for today's, or pick a date.")
	}

	var b strings.Builder
	b.WriteString(valueStyle.Bold(true).Render(entry.Title))
	b.WriteString("\n")
	if entry.Date != nil {
		b.WriteString(labelStyle.Render(*entry.Date))
		b.WriteString("\n")
	}
	b.WriteString(wrap(entry.Explanation, 72))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s (%s)\n", entry.URL, entry.MediaType)
	if entry.Copyright != nil {
		fmt.Fprintf(&b, "© %s\n", *entry.Copyright)
	}

	return b.String()
}

// Soft-wraps text on spaces at the given width.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}

	return b.String()
}
