package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodlens/internal/imagefile"
)

// FileSelectedMsg is sent when the picker selects a file.
type FileSelectedMsg struct {
	Path string
}

// pickerClosedMsg is sent when the picker is dismissed without a selection.
type pickerClosedMsg struct{}

type fileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// picker browses directories, listing only subdirectories and files with an
// image extension.
type picker struct {
	dir      string
	entries  []fileEntry
	selected int
	offset   int
	err      error
	height   int
	keys     keyMap
}

func newPicker(startDir string, keys keyMap) picker {
	if strings.TrimSpace(startDir) == "" {
		startDir, _ = os.Getwd()
	}
	if startDir == "" {
		startDir, _ = os.UserHomeDir()
	}
	if startDir == "" {
		startDir = string(filepath.Separator)
	}
	p := picker{dir: startDir, keys: keys}
	p.load()
	return p
}

func (p *picker) setHeight(h int) {
	p.height = h
	p.adjustScroll()
}

func (p *picker) load() {
	p.entries = nil
	p.selected = 0
	p.offset = 0
	p.err = nil

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		p.err = err
		return
	}

	if parent := filepath.Dir(p.dir); parent != p.dir {
		p.entries = append(p.entries, fileEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []fileEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fe := fileEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
			Path:  filepath.Join(p.dir, entry.Name()),
		}
		switch {
		case entry.IsDir():
			dirs = append(dirs, fe)
		case imagefile.HasImageExtension(entry.Name()):
			files = append(files, fe)
		}
	}
	byName := func(list []fileEntry) {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	byName(dirs)
	byName(files)

	p.entries = append(p.entries, dirs...)
	p.entries = append(p.entries, files...)
}

func (p *picker) chdir(dir string) {
	p.dir = dir
	p.load()
}

func (p picker) Update(msg tea.Msg) (picker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, p.keys.Escape):
		return p, func() tea.Msg { return pickerClosedMsg{} }
	case key.Matches(keyMsg, p.keys.Down):
		p.move(1)
	case key.Matches(keyMsg, p.keys.Up):
		p.move(-1)
	case key.Matches(keyMsg, p.keys.HalfPageDown):
		p.move(p.visibleRows() / 2)
	case key.Matches(keyMsg, p.keys.HalfPageUp):
		p.move(-p.visibleRows() / 2)
	case key.Matches(keyMsg, p.keys.Top):
		p.selected = 0
		p.adjustScroll()
	case key.Matches(keyMsg, p.keys.Bottom):
		p.selected = len(p.entries) - 1
		p.adjustScroll()
	case key.Matches(keyMsg, p.keys.Home):
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			p.chdir(home)
		}
	case key.Matches(keyMsg, p.keys.Parent):
		if parent := filepath.Dir(p.dir); parent != p.dir {
			p.chdir(parent)
		}
	case key.Matches(keyMsg, p.keys.Open):
		if p.selected < 0 || p.selected >= len(p.entries) {
			return p, nil
		}
		entry := p.entries[p.selected]
		if entry.IsDir {
			p.chdir(entry.Path)
			return p, nil
		}
		return p, func() tea.Msg { return FileSelectedMsg{Path: entry.Path} }
	}
	return p, nil
}

func (p *picker) move(delta int) {
	if len(p.entries) == 0 {
		return
	}
	p.selected += delta
	if p.selected < 0 {
		p.selected = 0
	}
	if p.selected >= len(p.entries) {
		p.selected = len(p.entries) - 1
	}
	p.adjustScroll()
}

func (p *picker) visibleRows() int {
	rows := p.height - 4 // title, path, two rules
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (p *picker) adjustScroll() {
	rows := p.visibleRows()
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+rows {
		p.offset = p.selected - rows + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p picker) View(theme Theme, width int) string {
	styles := theme.Styles()
	inner := width - 2
	if inner < 10 {
		inner = 10
	}
	rule := styles.FaintText.Render(strings.Repeat("─", minInt(inner, 60)))

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Choose an image"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Italic(true).Render(truncateMiddle(p.dir, inner)))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")

	switch {
	case p.err != nil:
		b.WriteString(styles.DangerText.Render(truncate("Error: "+p.err.Error(), inner)))
		b.WriteString("\n")
	case len(p.entries) == 0:
		b.WriteString(styles.FaintText.Render("  (no images here)"))
		b.WriteString("\n")
	}

	end := minInt(p.offset+p.visibleRows(), len(p.entries))
	for i := p.offset; i < end; i++ {
		entry := p.entries[i]
		name := entry.Name
		if entry.IsDir {
			name += "/"
		}
		line := truncate(name, inner-2)
		switch {
		case i == p.selected:
			b.WriteString("> " + styles.Selected.Render(line))
		case entry.IsDir:
			b.WriteString("  " + styles.InfoText.Bold(true).Render(line))
		default:
			b.WriteString("  " + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(rule)
	return b.String()
}
