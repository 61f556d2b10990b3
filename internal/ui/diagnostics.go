package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodlens/internal/logging"
)

type diagnosticsMsg struct {
	gen   int
	lines []string
	err   error
}

type diagnosticsTickMsg int

func loadDiagnosticsCmd(path string, gen int) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return diagnosticsMsg{gen: gen}
		}
		lines, err := logging.Tail(path, DiagnosticsLines)
		return diagnosticsMsg{gen: gen, lines: logging.FormatLines(lines), err: err}
	}
}

func diagnosticsTick(gen int) tea.Cmd {
	return tea.Tick(DiagnosticsRefresh, func(time.Time) tea.Msg {
		return diagnosticsTickMsg(gen)
	})
}

// renderDiagnostics renders the log overlay.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	width := maxInt(m.width-6, 20)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Diagnostics"))
	if m.logFile != "" {
		b.WriteString(styles.FaintText.Render("  " + truncateMiddle(m.logFile, width-14)))
	}
	b.WriteString("\n\n")

	switch {
	case strings.TrimSpace(m.logFile) == "":
		b.WriteString(styles.MutedText.Render("Diagnostic logging is off. Set log_file in config.toml or pass --log-file."))
	case m.diagErr != nil:
		b.WriteString(styles.DangerText.Render(truncate(m.diagErr.Error(), width)))
	case m.diag.TotalLineCount() == 0:
		b.WriteString(styles.MutedText.Render("No log entries yet."))
	default:
		b.WriteString(m.diag.View())
	}

	return m.overlay(b.String(), width)
}
