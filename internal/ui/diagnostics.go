// Package ui implements the interactive diagnostic browser: a Bubble Tea
// model that lists every diagnostic from a compile run and shows full
// detail (secondary labels, groups, referenced sub-diagnostics) for
// whichever one is selected.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tim/internal/diag"
	"tim/internal/source"
)

type keyMap struct {
	Up, Down, Top, Bottom, Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var diagnosticsKeys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first")),
	Bottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type DiagnosticsModel struct {
	items    []diag.Diagnostic
	registry *source.Registry
	cursor   int
	width    int
	height   int
	help     help.Model
}

// NewDiagnosticsModel returns a Bubble Tea model over a sorted diagnostic
// list. registry resolves each diagnostic's spans back to file paths and
// line/column positions.
func NewDiagnosticsModel(items []diag.Diagnostic, registry *source.Registry) tea.Model {
	return &DiagnosticsModel{items: items, registry: registry, width: 100, height: 24, help: help.New()}
}

func (m *DiagnosticsModel) Init() tea.Cmd { return nil }

func (m *DiagnosticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, diagnosticsKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, diagnosticsKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, diagnosticsKeys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, diagnosticsKeys.Top):
			m.cursor = 0
		case key.Matches(msg, diagnosticsKeys.Bottom):
			m.cursor = len(m.items) - 1
		}
	}
	return m, nil
}

func (m *DiagnosticsModel) View() string {
	if len(m.items) == 0 {
		return "no diagnostics\n"
	}

	listWidth := m.width / 2
	if listWidth < 24 {
		listWidth = 24
	}

	var list strings.Builder
	for i, d := range m.items {
		prefix := "  "
		style := severityStyle(d.Severity)
		if i == m.cursor {
			prefix = "> "
			style = style.Reverse(true)
		}
		line := fmt.Sprintf("%s%-7s %s", prefix, d.Severity.String(), d.Message)
		list.WriteString(style.Render(truncate(line, listWidth)))
		list.WriteString("\n")
	}

	detail := m.renderDetail(m.items[m.cursor])

	listBox := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	detailBox := lipgloss.NewStyle().PaddingLeft(2).Render(detail)
	body := lipgloss.JoinHorizontal(lipgloss.Top, listBox, detailBox)

	m.help.Width = m.width
	footer := m.help.View(diagnosticsKeys)
	return body + "\n\n" + footer + "\n"
}

func (m *DiagnosticsModel) renderDetail(d diag.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", severityStyle(d.Severity).Bold(true).Render(d.Severity.String()+": "+d.Code.String()))
	fmt.Fprintf(&b, "%s\n\n", locationString(d.Primary.Span, m.registry))
	fmt.Fprintf(&b, "%s\n", d.Message)

	if len(d.Secondary) > 0 {
		b.WriteString("\nnotes:\n")
		for _, n := range d.Secondary {
			fmt.Fprintf(&b, "  %s: %s\n", locationString(n.Span, m.registry), n.Message)
		}
	}
	for _, group := range d.Groups {
		fmt.Fprintf(&b, "\n%s:\n", group.Purpose)
		for _, label := range group.Labels {
			fmt.Fprintf(&b, "  %s: %s\n", locationString(label.Span, m.registry), label.Message)
		}
	}
	if len(d.Referenced) > 0 {
		b.WriteString("\nreferenced:\n")
		for _, ref := range d.Referenced {
			fmt.Fprintf(&b, "  %s: %s\n", locationString(ref.Primary.Span, m.registry), ref.Message)
		}
	}
	if d.Help != "" {
		fmt.Fprintf(&b, "\nhelp: %s\n", d.Help)
	}
	return b.String()
}

func locationString(span source.Span, registry *source.Registry) string {
	file := registry.Get(span.File)
	if file == nil {
		return "<unknown>"
	}
	pos := file.ToLineCol(span.Start)
	return fmt.Sprintf("%s:%d:%d", file.Path, pos.Line, pos.Col)
}

func severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SevError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case diag.SevWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
