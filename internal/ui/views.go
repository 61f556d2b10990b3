package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/state"
)

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	logo := bg.Render("FoodLens", styles.Logo)
	badge := styles.PhaseStyle(m.snapshot.Phase).Render(m.snapshot.Phase.String())
	parts := []string{logo, badge}
	if m.snapshot.HasImage() {
		parts = append(parts, bg.Render(truncateMiddle(m.snapshot.Image.Name, 40), styles.Text))
	}
	left := bg.Join(parts, "  ")

	right := ""
	if m.endpoint != "" {
		room := m.width - lipgloss.Width(left) - 4
		if room > 10 {
			right = bg.Render(truncateMiddle(m.endpoint, room), styles.FaintText)
		}
	}
	gap := maxInt(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	line := bg.FillLine(" "+left+bg.Render(strings.Repeat(" ", gap), styles.Text)+right, m.width)

	second := styles.FaintText.Render(strings.Repeat("─", maxInt(m.width, 1)))
	if m.notice != "" {
		second = styles.WarningText.Render(truncate(" "+m.notice, m.width))
	}
	return line + "\n" + second
}

func (m Model) renderFooter() string {
	if m.mode == modePicker {
		return " " + m.help.View(pickerKeys(m.keys))
	}
	return " " + m.help.View(m.keys)
}

// renderBody renders exactly one body for the current phase.
func (m Model) renderBody() string {
	if m.mode == modePicker {
		return m.picker.View(m.theme, m.width)
	}
	switch m.snapshot.Phase {
	case state.PhaseImageSelected:
		return m.renderSelected()
	case state.PhaseLoading:
		return m.renderLoading()
	case state.PhaseError:
		return m.renderError()
	case state.PhaseResultReady:
		return m.results.View()
	default:
		return m.renderIdle()
	}
}

func (m Model) renderIdle() string {
	styles := m.theme.Styles()
	lines := []string{
		styles.Text.Bold(true).Render("Upload a food photo"),
		"",
		styles.MutedText.Render("Press ") + styles.WarningText.Render("o") +
			styles.MutedText.Render(" to choose an image, then ") + styles.WarningText.Render("a") +
			styles.MutedText.Render(" to analyze it."),
	}
	return m.center(strings.Join(lines, "\n"))
}

func (m Model) renderSelected() string {
	styles := m.theme.Styles()
	img := m.snapshot.Image

	info := []string{
		styles.Text.Bold(true).Render(truncate(img.Name, maxInt(m.width-4, 10))),
		styles.MutedText.Render(fmt.Sprintf("%s · %s", img.MIME, humanBytes(img.Size()))),
	}
	if w, h := m.snapshot.Preview.Dimensions(); w > 0 && h > 0 {
		info = append(info, styles.MutedText.Render(fmt.Sprintf("%d × %d px", w, h)))
	}
	info = append(info, "", styles.MutedText.Render("Press ")+styles.WarningText.Render("a")+
		styles.MutedText.Render(" to analyze."))

	thumb := m.renderPreview(m.bodyHeight() - len(info) - 1)
	return m.center(lipgloss.JoinVertical(lipgloss.Center, thumb, "", strings.Join(info, "\n")))
}

func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	line := m.spinner.View() + " " + styles.Text.Render("Analyzing "+truncate(m.snapshot.Image.Name, 40)+"...")
	return m.center(line)
}

func (m Model) renderError() string {
	styles := m.theme.Styles()
	lines := []string{styles.DangerText.Render(m.snapshot.Message)}
	if m.snapshot.HasImage() {
		lines = append(lines, "",
			styles.MutedText.Render("Press ")+styles.WarningText.Render("a")+
				styles.MutedText.Render(" to retry or ")+styles.WarningText.Render("o")+
				styles.MutedText.Render(" to choose another image."))
	} else {
		lines = append(lines, "",
			styles.MutedText.Render("Press ")+styles.WarningText.Render("o")+
				styles.MutedText.Render(" to choose an image."))
	}
	return m.center(strings.Join(lines, "\n"))
}

// renderPreview draws the selected image within maxRows rows, or a note
// when it cannot be drawn.
func (m Model) renderPreview(maxRows int) string {
	cols := minInt(previewMaxCols, maxInt(m.width-4, 1))
	rows := minInt(previewMaxRows, maxRows)
	if rows < 2 {
		return ""
	}
	if out := m.snapshot.Preview.Render(cols, rows); out != "" {
		return out
	}
	return m.theme.Styles().FaintText.Render("(no preview for this format)")
}

// renderResultsContent fills the results viewport from the current result.
func (m *Model) renderResultsContent() {
	if m.snapshot.Phase != state.PhaseResultReady {
		return
	}
	m.results.SetContent(m.resultsText())
}

func (m Model) resultsText() string {
	styles := m.theme.Styles()
	result := m.snapshot.Result
	width := maxInt(m.width-2, 20)

	fields := m.renderFields(result)
	thumb := m.renderPreview(minInt(previewMaxRows/2, m.bodyHeight()/2))

	var top string
	if thumb != "" && m.width >= LayoutSideBySideWidth {
		top = lipgloss.JoinHorizontal(lipgloss.Top, thumb, "   ", fields)
	} else if thumb != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, thumb, "", fields)
	} else {
		top = fields
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(result.DisplayName()))
	b.WriteString("\n\n")
	b.WriteString(top)
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render("Description"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Width(width).Render(result.DisplayDescription()))
	return lipgloss.NewStyle().PaddingLeft(1).Render(b.String())
}

func (m Model) renderFields(result foodlens.Analysis) string {
	styles := m.theme.Styles()
	labelWidth := 10
	lines := make([]string, 0, 8)
	for _, f := range result.Fields() {
		value := styles.Text.Render(f.Value)
		switch {
		case f.Label == "Type" && result.IsVeg:
			value = styles.SuccessText.Render(f.Value)
		case f.Label == "Type":
			value = styles.DangerText.Render(f.Value)
		case f.Value == foodlens.NotAvailable:
			value = styles.FaintText.Render(f.Value)
		}
		if f.Label == "Protein" {
			lines = append(lines, "", styles.MutedText.Bold(true).Render("Macronutrients"))
		}
		lines = append(lines, styles.MutedText.Render(padRight(f.Label, labelWidth))+value)
	}
	return strings.Join(lines, "\n")
}

// center places content in the middle of the body area.
func (m Model) center(content string) string {
	return lipgloss.Place(
		maxInt(m.width, 1),
		m.bodyHeight(),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
