// Package tui is the terminal front-end for a practice session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lojasmm/convostarter/internal/catalog"
	"github.com/lojasmm/convostarter/internal/practice"
)

type focus int

const (
	focusLanguage focus = iota
	focusScenario
	focusResponse
	focusCount
)

// snapshotMsg carries state pushed by the session when delayed work completes.
type snapshotMsg practice.Snapshot

var (
	colorPrimary = lipgloss.Color("#00ffff")
	colorSuccess = lipgloss.Color("#00ff00")
	colorError   = lipgloss.Color("#ff0000")
	colorMuted   = lipgloss.Color("#666666")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	focusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	badgeStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#000000")).Background(colorSuccess)
	mutedBadge    = badgeStyle.Background(colorMuted)
	feedbackStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorSuccess).PaddingLeft(1)
)

type Model struct {
	session   *practice.Session
	languages []catalog.LanguageOption
	scenarios []catalog.ScenarioOption

	// 0 is the unselected option; i+1 selects element i.
	langIdx int
	scIdx   int
	focus   focus

	input   textarea.Model
	spinner spinner.Model
	state   practice.Snapshot
}

func New(s *practice.Session) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your response in the selected language."
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(4)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session:   s,
		languages: catalog.Languages(),
		scenarios: catalog.Scenarios(),
		input:     ta,
		spinner:   sp,
		state:     s.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		// The pushed snapshot may predate key presses handled since; it only
		// signals that the session changed.
		m.state = m.session.Snapshot()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab":
			return m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "ctrl+s":
			m.state, _ = m.session.Submit(m.input.Value())
			return m, nil
		case "left", "right":
			if m.focus != focusResponse {
				return m.cycle(msg.String() == "right"), nil
			}
		}

		if m.focus == focusResponse {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.session.SetResponse(m.input.Value())
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusResponse {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

// cycle moves the focused selector and applies the new selection.
func (m Model) cycle(forward bool) Model {
	step := -1
	if forward {
		step = 1
	}
	switch m.focus {
	case focusLanguage:
		n := len(m.languages) + 1
		m.langIdx = (m.langIdx + step + n) % n
	case focusScenario:
		n := len(m.scenarios) + 1
		m.scIdx = (m.scIdx + step + n) % n
	}

	m.state = m.session.Select(m.languageID(), m.scenarioID())
	m.input.Reset()
	return m
}

func (m Model) languageID() string {
	if m.langIdx == 0 {
		return ""
	}
	return m.languages[m.langIdx-1].ID
}

func (m Model) scenarioID() string {
	if m.scIdx == 0 {
		return ""
	}
	return m.scenarios[m.scIdx-1].ID
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(mutedStyle.Render("CONVERSATION STARTER MVP") + "\n")
	b.WriteString(titleStyle.Render("Practice real-world language chats") + "\n\n")

	langLabel := "Select a language"
	if m.langIdx > 0 {
		l := m.languages[m.langIdx-1]
		langLabel = fmt.Sprintf("%s (%s)", l.Label, l.Native())
	}
	scLabel := "Select a scenario"
	if m.scIdx > 0 {
		scLabel = m.scenarios[m.scIdx-1].Label
	}
	b.WriteString(m.field("Language", "‹ "+langLabel+" ›", focusLanguage) + "\n")
	b.WriteString(m.field("Scenario", "‹ "+scLabel+" ›", focusScenario) + "\n\n")

	badge := badgeStyle
	if m.state.Status == practice.StatusIdle {
		badge = mutedBadge
	}
	b.WriteString("Conversation prompt " + badge.Render(m.state.Badge) + "\n")

	switch {
	case m.state.Status == practice.StatusGenerating:
		b.WriteString(m.spinner.View() + " Creating a prompt...\n")
	default:
		if m.state.Error != "" {
			b.WriteString(errorStyle.Render(m.state.Error) + "\n")
		}
		if m.state.Prompt != "" {
			b.WriteString(m.state.Prompt + "\n")
		} else if m.state.Error == "" {
			b.WriteString(mutedStyle.Render("Select a language and scenario to begin.") + "\n")
		}
	}

	b.WriteString("\n" + m.field("Your response", "", focusResponse) + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.state.Submitting {
		b.WriteString(m.spinner.View() + " Checking...\n")
	}

	if m.state.Feedback != "" {
		b.WriteString("\n" + feedbackStyle.Render("Quick feedback\n"+m.state.Feedback) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render("tab: next field • ←/→: change • ctrl+s: submit • esc: quit") + "\n")
	return b.String()
}

func (m Model) field(label, value string, f focus) string {
	if m.focus == f {
		return focusedStyle.Render("> "+label) + " " + value
	}
	return "  " + label + " " + value
}

// Run drives s interactively until the user quits.
func Run(s *practice.Session) error {
	p := tea.NewProgram(New(s))
	s.OnChange(func(snap practice.Snapshot) {
		p.Send(snapshotMsg(snap))
	})
	_, err := p.Run()
	return err
}
