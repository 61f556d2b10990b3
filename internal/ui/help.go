package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const helpKeyWidth = 13

// renderHelp lists every binding, grouped the way the footer groups them.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	k := m.keys
	pk := pickerKeys(k)

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Upload", []key.Binding{k.Choose, k.Analyze, k.Up, k.Down, k.HalfPageDown, k.HalfPageUp}},
		{"File picker", append(pk.FullHelp()[0], pk.FullHelp()[1]...)},
		{"General", []key.Binding{k.Diagnostics, k.CycleTheme, k.Help, k.Quit}},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n")

	keyStyle := styles.WarningText.Width(helpKeyWidth)
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		for _, binding := range section.bindings {
			h := binding.Help()
			desc := h.Desc
			if !binding.Enabled() {
				desc += styles.FaintText.Render(" (disabled)")
			}
			b.WriteString("\n" + keyStyle.Render(h.Key) + styles.Text.Render(desc))
		}
		b.WriteString("\n")
	}

	return m.overlay(strings.TrimRight(b.String(), "\n"), 44)
}

// overlay centers a bordered modal over the whole screen.
func (m Model) overlay(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
