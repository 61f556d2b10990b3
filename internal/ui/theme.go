package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodlens/internal/state"
)

// Theme is a named palette. All colors are hex strings.
type Theme struct {
	Name string

	Background    string
	Surface       string
	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// PhaseColors colors the header badge for each state.Phase.
	PhaseColors map[state.Phase]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Surface lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Logo     lipgloss.Style
	Selected lipgloss.Style

	theme Theme
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Surface:     fg(t.Text).Background(lipgloss.Color(t.Surface)),
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),
		Logo:        fg(t.Warning).Bold(true),
		Selected:    fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)).Bold(true),
		theme:       t,
	}
}

// PhaseStyle returns the header badge style for p.
func (s Styles) PhaseStyle(p state.Phase) lipgloss.Style {
	color, ok := s.theme.PhaseColors[p]
	if !ok {
		color = s.theme.Muted
	}
	return fg(s.theme.Background).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// builtinThemes is also the order "T" cycles through.
var builtinThemes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name: "Nightfox",
		Background: "#131a24", Surface: "#192330",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent: "#719cd6", Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		PhaseColors: map[state.Phase]string{
			state.PhaseIdle:          "#738091",
			state.PhaseImageSelected: "#719cd6",
			state.PhaseLoading:       "#9d79d6",
			state.PhaseError:         "#c94f6d",
			state.PhaseResultReady:   "#81b29a",
		},
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name: "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent: "#7E9CD8", Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		PhaseColors: map[state.Phase]string{
			state.PhaseIdle:          "#727169",
			state.PhaseImageSelected: "#7E9CD8",
			state.PhaseLoading:       "#957FB8",
			state.PhaseError:         "#E46876",
			state.PhaseResultReady:   "#98BB6C",
		},
	},
	{
		// Tailwind slate and sky
		Name: "Slate",
		Background: "#020617", Surface: "#0f172a",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b",
		Accent: "#38bdf8", Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		PhaseColors: map[state.Phase]string{
			state.PhaseIdle:          "#64748b",
			state.PhaseImageSelected: "#0ea5e9",
			state.PhaseLoading:       "#06b6d4",
			state.PhaseError:         "#dc2626",
			state.PhaseResultReady:   "#16a34a",
		},
	},
}

// GetTheme returns a theme by name, ignoring case and surrounding space.
// Unknown names fall back to the first built-in theme.
func GetTheme(name string) Theme {
	name = strings.TrimSpace(name)
	for _, t := range builtinThemes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return builtinThemes[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range builtinThemes {
		if t.Name == current {
			return builtinThemes[(i+1)%len(builtinThemes)].Name
		}
	}
	return builtinThemes[0].Name
}

// ThemeNames returns the built-in theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(builtinThemes))
	for i, t := range builtinThemes {
		names[i] = t.Name
	}
	return names
}
