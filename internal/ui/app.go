package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/imagefile"
	"github.com/five82/foodlens/internal/logging"
	"github.com/five82/foodlens/internal/prefs"
	"github.com/five82/foodlens/internal/preview"
	"github.com/five82/foodlens/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Analyzer  foodlens.Analyzer
	Store     *state.Store
	Logger    logrus.FieldLogger
	ThemeName string
	LogFile   string // tailed by the diagnostics overlay
	Endpoint  string // shown in the header
	ImagePath string // optional; loaded on start
	StartDir  string // picker start directory; empty uses the working dir

	// SavePrefs is called off the event loop after the theme changes or an
	// image is selected.
	SavePrefs func(prefs.Prefs)
}

type mode int

const (
	modeMain mode = iota
	modePicker
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	analyzer    foodlens.Analyzer
	store       *state.Store
	log         logrus.FieldLogger
	logFile     string
	endpoint    string
	initialPath string
	startDir    string
	savePrefs   func(prefs.Prefs)

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	mode    mode
	picker  picker
	width   int
	height  int
	ready   bool
	notice  string // last rejected selection

	// Data state
	snapshot state.Snapshot

	// Results panel
	results viewport.Model

	// Overlays
	showHelp bool
	showDiag bool
	diag     viewport.Model
	diagGen  int
	diagErr  error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	var logger logrus.FieldLogger = logging.Discard()
	if opts.Logger != nil {
		logger = opts.Logger
	}

	m := Model{
		ctx:         ctx,
		analyzer:    opts.Analyzer,
		store:       store,
		log:         logger,
		logFile:     opts.LogFile,
		endpoint:    opts.Endpoint,
		initialPath: strings.TrimSpace(opts.ImagePath),
		startDir:    opts.StartDir,
		savePrefs:   opts.SavePrefs,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		results:     viewport.New(0, 0),
		diag:        viewport.New(0, 0),
	}
	m.applyTheme(GetTheme(opts.ThemeName))
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.initialPath != "" {
		return loadImageCmd(m.initialPath)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case FileSelectedMsg:
		m.mode = modeMain
		return m, loadImageCmd(msg.Path)

	case pickerClosedMsg:
		m.mode = modeMain
		return m, nil

	case imageLoadedMsg:
		if !m.handleImageLoaded(msg) {
			return m, nil
		}
		return m, m.persistPrefs()

	case analysisDoneMsg:
		m.handleAnalysisDone(msg)
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.Phase != state.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case diagnosticsMsg:
		if msg.gen == m.diagGen {
			m.handleDiagnostics(msg)
		}
		return m, nil

	case diagnosticsTickMsg:
		if !m.showDiag || int(msg) != m.diagGen {
			return m, nil
		}
		return m, tea.Batch(loadDiagnosticsCmd(m.logFile, m.diagGen), diagnosticsTick(m.diagGen))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDiag {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showDiag {
		if key.Matches(msg, m.keys.Diagnostics, m.keys.Escape) {
			m.showDiag = false
			return m, nil
		}
		var cmd tea.Cmd
		m.diag, cmd = m.diag.Update(msg)
		return m, cmd
	}

	if m.mode == modePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.renderResultsContent()
		return m, m.persistPrefs()

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiag = true
		m.diagGen++
		return m, tea.Batch(loadDiagnosticsCmd(m.logFile, m.diagGen), diagnosticsTick(m.diagGen))

	case key.Matches(msg, m.keys.Choose):
		m.openPicker()
		return m, nil

	case key.Matches(msg, m.keys.Analyze):
		return m.analyze()
	}

	if m.snapshot.Phase == state.PhaseResultReady {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

// analyze starts a request for the selected image. The store refuses when
// nothing is selected or a request is already in flight; no command is
// returned in that case.
func (m Model) analyze() (Model, tea.Cmd) {
	ticket, err := m.store.BeginAnalysis()
	m.refresh()
	if err != nil {
		m.log.WithError(err).Info("analysis not started")
		return m, nil
	}
	m.log.WithFields(logrus.Fields{
		"seq":  ticket.Seq,
		"file": ticket.Image.Name,
	}).Info("analysis started")
	return m, tea.Batch(m.spinner.Tick, analyzeCmd(m.ctx, m.analyzer, ticket))
}

func (m *Model) openPicker() {
	m.picker = newPicker(m.startDir, m.keys)
	m.picker.setHeight(m.bodyHeight())
	m.mode = modePicker
	m.notice = ""
}

// handleImageLoaded reports whether the image was selected.
func (m *Model) handleImageLoaded(msg imageLoadedMsg) bool {
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("path", msg.path).Warn("image rejected")
		m.notice = rejectionNotice(msg.path, msg.err)
		return false
	}
	m.store.Select(msg.image, msg.preview)
	m.startDir = filepath.Dir(msg.image.Path)
	m.notice = ""
	m.refresh()
	entry := m.log.WithFields(logrus.Fields{
		"file":  msg.image.Name,
		"mime":  msg.image.MIME,
		"bytes": msg.image.Size(),
		"seq":   m.snapshot.Seq,
	})
	if err := msg.preview.Err(); err != nil {
		entry = entry.WithField("preview_error", err.Error())
	}
	entry.Info("image selected")
	return true
}

// persistPrefs returns a command that saves the current theme and picker
// directory, or nil when no saver is configured.
func (m Model) persistPrefs() tea.Cmd {
	save := m.savePrefs
	if save == nil {
		return nil
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastDir: m.startDir}
	return func() tea.Msg {
		save(p)
		return nil
	}
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) {
	applied := m.store.Settle(msg.ticket, msg.result, msg.err)
	m.refresh()

	entry := m.log.WithField("seq", msg.ticket.Seq)
	switch {
	case !applied:
		entry.Info("stale analysis result ignored")
	case msg.err != nil:
		entry.WithError(msg.err).WithField("kind", foodlens.KindOf(msg.err)).Warn("analysis failed")
	default:
		entry.WithField("food_name", msg.result.FoodName).Info("analysis result shown")
	}
}

func (m *Model) handleDiagnostics(msg diagnosticsMsg) {
	m.diagErr = msg.err
	if msg.err != nil {
		return
	}
	atBottom := m.diag.AtBottom() || m.diag.TotalLineCount() == 0
	m.diag.SetContent(strings.Join(msg.lines, "\n"))
	if atBottom {
		m.diag.GotoBottom()
	}
}

// refresh pulls the latest snapshot and syncs everything derived from it.
func (m *Model) refresh() {
	prevSeq, prevPhase := m.snapshot.Seq, m.snapshot.Phase
	m.snapshot = m.store.Snapshot()
	m.keys.Analyze.SetEnabled(m.snapshot.CanAnalyze())
	if m.snapshot.Phase == state.PhaseResultReady &&
		(prevPhase != state.PhaseResultReady || prevSeq != m.snapshot.Seq) {
		m.renderResultsContent()
		m.results.GotoTop()
	}
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	styles := t.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.FullSeparator = styles.FaintText
}

func (m *Model) resize() {
	m.help.Width = m.width
	body := m.bodyHeight()
	m.results.Width = maxInt(m.width, 1)
	m.results.Height = body
	m.diag.Width = maxInt(m.width-10, 1)
	m.diag.Height = maxInt(m.height-8, 1)
	m.picker.setHeight(body)
	m.renderResultsContent()
}

func (m Model) bodyHeight() int {
	return maxInt(m.height-headerHeight-footerHeight, 1)
}

func rejectionNotice(path string, err error) string {
	name := filepath.Base(path)
	if errors.Is(err, imagefile.ErrNotImage) {
		return name + " is not an image"
	}
	return "Could not open " + name
}

// Messages

type imageLoadedMsg struct {
	path    string
	image   imagefile.Image
	preview *preview.Ref
	err     error
}

type analysisDoneMsg struct {
	ticket state.Ticket
	result foodlens.Analysis
	err    error
}

// Commands

func loadImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := imagefile.Open(path)
		if err != nil {
			return imageLoadedMsg{path: path, err: err}
		}
		return imageLoadedMsg{path: path, image: img, preview: preview.New(img.Data)}
	}
}

func analyzeCmd(ctx context.Context, analyzer foodlens.Analyzer, ticket state.Ticket) tea.Cmd {
	return func() tea.Msg {
		if analyzer == nil {
			return analysisDoneMsg{ticket: ticket, err: errors.New("no analyzer configured")}
		}
		result, err := analyzer.Analyze(ctx, ticket.Image.Upload())
		return analysisDoneMsg{ticket: ticket, result: result, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// renderMain renders the header, the body for the current phase and the
// footer.
func (m Model) renderMain() string {
	body := lipgloss.NewStyle().
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(m.renderBody())

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}
