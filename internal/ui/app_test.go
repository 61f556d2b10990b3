package ui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/logging"
	"github.com/five82/foodlens/internal/prefs"
	"github.com/five82/foodlens/internal/state"
)

const pizzaEnvelope = `{"analysis": "{\"food_name\":\"Pizza\",\"is_veg\":false,\"quality_score\":8,\"macronutrients\":{\"protein\":\"12g\"}}"}`

type fakeAnalyzer struct {
	calls  int32
	result foodlens.Analysis
	err    error
}

func (f *fakeAnalyzer) Analyze(context.Context, foodlens.Upload) (foodlens.Analysis, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.result, f.err
}

func pizzaAnalyzer(t *testing.T) *fakeAnalyzer {
	t.Helper()
	result, err := foodlens.Decode([]byte(pizzaEnvelope))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return &fakeAnalyzer{result: result}
}

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.RGBA{R: 200, G: 80, B: 40, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func newTestModel(t *testing.T, analyzer foodlens.Analyzer) Model {
	t.Helper()
	m := New(Options{
		Analyzer: analyzer,
		Store:    &state.Store{},
		Logger:   logging.Discard(),
		StartDir: t.TempDir(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and any batched children, returning their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findDone(t *testing.T, cmd tea.Cmd) analysisDoneMsg {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if done, ok := msg.(analysisDoneMsg); ok {
			return done
		}
	}
	t.Fatalf("command produced no analysisDoneMsg")
	return analysisDoneMsg{}
}

func selectImage(t *testing.T, m Model, path string) Model {
	t.Helper()
	msgs := runCmd(loadImageCmd(path))
	if len(msgs) != 1 {
		t.Fatalf("loadImageCmd produced %d messages, want 1", len(msgs))
	}
	m, _ = update(t, m, msgs[0])
	return m
}

func TestAnalyzeKeyDisabledWithoutImage(t *testing.T) {
	fake := pizzaAnalyzer(t)
	m := newTestModel(t, fake)

	if m.keys.Analyze.Enabled() {
		t.Fatalf("Analyze binding enabled with no image selected")
	}
	m, cmd := update(t, m, runeKey("a"))
	if cmd != nil {
		t.Fatalf("pressing a without an image returned a command")
	}
	if m.snapshot.Phase != state.PhaseIdle {
		t.Fatalf("Phase = %v, want idle", m.snapshot.Phase)
	}
	if atomic.LoadInt32(&fake.calls) != 0 {
		t.Fatalf("analyzer called %d times, want 0", fake.calls)
	}
}

func TestAnalyzeWithoutImageShowsValidationMessage(t *testing.T) {
	fake := pizzaAnalyzer(t)
	m := newTestModel(t, fake)

	m, cmd := m.analyze()
	if cmd != nil {
		t.Fatalf("analyze without an image returned a command")
	}
	if m.snapshot.Phase != state.PhaseError {
		t.Fatalf("Phase = %v, want error", m.snapshot.Phase)
	}
	if !foodlens.IsKind(m.snapshot.Err, foodlens.KindValidation) {
		t.Fatalf("Err = %v, want validation error", m.snapshot.Err)
	}
	if view := m.View(); !strings.Contains(view, foodlens.MessageNoImage) {
		t.Fatalf("View does not show %q", foodlens.MessageNoImage)
	}
	if atomic.LoadInt32(&fake.calls) != 0 {
		t.Fatalf("analyzer called %d times, want 0", fake.calls)
	}
}

func TestSelectAnalyzeShowsResult(t *testing.T) {
	fake := pizzaAnalyzer(t)
	m := newTestModel(t, fake)
	path := writeTestPNG(t, t.TempDir(), "pizza.png")

	m = selectImage(t, m, path)
	if m.snapshot.Phase != state.PhaseImageSelected {
		t.Fatalf("Phase = %v, want image selected", m.snapshot.Phase)
	}
	if !m.keys.Analyze.Enabled() {
		t.Fatalf("Analyze binding disabled after selecting an image")
	}
	if view := m.View(); !strings.Contains(view, "pizza.png") {
		t.Fatalf("View does not name the selected image")
	}

	m, cmd := update(t, m, runeKey("a"))
	if cmd == nil {
		t.Fatalf("pressing a returned no command")
	}
	if m.snapshot.Phase != state.PhaseLoading {
		t.Fatalf("Phase = %v, want loading", m.snapshot.Phase)
	}
	if m.keys.Analyze.Enabled() {
		t.Fatalf("Analyze binding enabled while loading")
	}
	if _, again := update(t, m, runeKey("a")); again != nil {
		t.Fatalf("second press while loading returned a command")
	}
	if view := m.View(); !strings.Contains(view, "Analyzing pizza.png") {
		t.Fatalf("loading view missing spinner text")
	}

	m, _ = update(t, m, findDone(t, cmd))
	if m.snapshot.Phase != state.PhaseResultReady {
		t.Fatalf("Phase = %v, want result ready", m.snapshot.Phase)
	}
	if atomic.LoadInt32(&fake.calls) != 1 {
		t.Fatalf("analyzer called %d times, want 1", fake.calls)
	}

	view := m.View()
	for _, want := range []string{"Pizza", "Non-Vegetarian", "8/10", "12g", "N/A", foodlens.NoDescription} {
		if !strings.Contains(view, want) {
			t.Fatalf("results view missing %q", want)
		}
	}
	if strings.Contains(view, "Analyzing") {
		t.Fatalf("results view still shows the loading indicator")
	}
}

func TestMalformedAnalysisShowsGenericError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"analysis": "not-json"}`))
	}))
	t.Cleanup(server.Close)
	client, err := foodlens.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	m := newTestModel(t, client)
	m = selectImage(t, m, writeTestPNG(t, t.TempDir(), "x.png"))
	m, cmd := update(t, m, runeKey("a"))
	m, _ = update(t, m, findDone(t, cmd))

	if m.snapshot.Phase != state.PhaseError {
		t.Fatalf("Phase = %v, want error", m.snapshot.Phase)
	}
	if !foodlens.IsKind(m.snapshot.Err, foodlens.KindDecode) {
		t.Fatalf("Err = %v, want decode error", m.snapshot.Err)
	}
	view := m.View()
	if !strings.Contains(view, foodlens.MessageGeneric) {
		t.Fatalf("View does not show the generic message")
	}
	if strings.Contains(view, "not-json") {
		t.Fatalf("View leaks the underlying cause")
	}
	if !m.keys.Analyze.Enabled() {
		t.Fatalf("Analyze binding should allow a retry from error")
	}
}

func TestStaleResultIgnoredAfterReselect(t *testing.T) {
	fake := pizzaAnalyzer(t)
	m := newTestModel(t, fake)
	dir := t.TempDir()

	m = selectImage(t, m, writeTestPNG(t, dir, "first.png"))
	m, cmd := update(t, m, runeKey("a"))
	late := findDone(t, cmd)

	m = selectImage(t, m, writeTestPNG(t, dir, "second.png"))
	m, _ = update(t, m, late)

	if m.snapshot.Phase != state.PhaseImageSelected {
		t.Fatalf("Phase = %v, want image selected", m.snapshot.Phase)
	}
	if m.snapshot.Image.Name != "second.png" {
		t.Fatalf("Image = %q, want second.png", m.snapshot.Image.Name)
	}
	if m.snapshot.Result.FoodName != "" {
		t.Fatalf("late result was applied: %+v", m.snapshot.Result)
	}
}

func TestReselectClearsResult(t *testing.T) {
	fake := pizzaAnalyzer(t)
	m := newTestModel(t, fake)
	dir := t.TempDir()

	m = selectImage(t, m, writeTestPNG(t, dir, "first.png"))
	m, cmd := update(t, m, runeKey("a"))
	m, _ = update(t, m, findDone(t, cmd))
	if m.snapshot.Phase != state.PhaseResultReady {
		t.Fatalf("Phase = %v, want result ready", m.snapshot.Phase)
	}
	firstPreview := m.snapshot.Preview

	m = selectImage(t, m, writeTestPNG(t, dir, "second.png"))
	if m.snapshot.Phase != state.PhaseImageSelected {
		t.Fatalf("Phase = %v, want image selected", m.snapshot.Phase)
	}
	if m.snapshot.Result.FoodName != "" || m.snapshot.Err != nil {
		t.Fatalf("reselect did not clear result and error")
	}
	if !firstPreview.Released() {
		t.Fatalf("previous preview was not released")
	}
	if view := m.View(); strings.Contains(view, "Non-Vegetarian") {
		t.Fatalf("View still shows the previous result")
	}
}

func TestRejectedFileKeepsState(t *testing.T) {
	m := newTestModel(t, pizzaAnalyzer(t))
	dir := t.TempDir()
	m = selectImage(t, m, writeTestPNG(t, dir, "keep.png"))

	text := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(text, []byte("hello"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m = selectImage(t, m, text)

	if m.snapshot.Image.Name != "keep.png" {
		t.Fatalf("Image = %q, want keep.png after rejected selection", m.snapshot.Image.Name)
	}
	if m.notice != "fake.png is not an image" {
		t.Fatalf("notice = %q, want rejection notice", m.notice)
	}
	if view := m.View(); !strings.Contains(view, "fake.png is not an image") {
		t.Fatalf("View does not show the rejection notice")
	}
}

func TestPickerFlowSelectsImage(t *testing.T) {
	m := newTestModel(t, pizzaAnalyzer(t))
	writeTestPNG(t, m.startDir, "meal.png")

	m, _ = update(t, m, runeKey("o"))
	if m.mode != modePicker {
		t.Fatalf("mode = %v, want picker", m.mode)
	}
	m, _ = update(t, m, runeKey("G"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("enter produced %d messages, want 1", len(msgs))
	}
	sel, ok := msgs[0].(FileSelectedMsg)
	if !ok || filepath.Base(sel.Path) != "meal.png" {
		t.Fatalf("message = %#v, want FileSelectedMsg for meal.png", msgs[0])
	}

	m, cmd = update(t, m, sel)
	if m.mode != modeMain {
		t.Fatalf("mode = %v, want main after selection", m.mode)
	}
	loaded := runCmd(cmd)
	m, _ = update(t, m, loaded[0])
	if m.snapshot.Image.Name != "meal.png" {
		t.Fatalf("Image = %q, want meal.png", m.snapshot.Image.Name)
	}
}

func TestPickerEscapeCancels(t *testing.T) {
	m := newTestModel(t, pizzaAnalyzer(t))
	m, _ = update(t, m, runeKey("o"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	for _, msg := range runCmd(cmd) {
		m, _ = update(t, m, msg)
	}
	if m.mode != modeMain {
		t.Fatalf("mode = %v, want main after esc", m.mode)
	}
	if m.snapshot.Phase != state.PhaseIdle {
		t.Fatalf("Phase = %v, want idle", m.snapshot.Phase)
	}
}

func TestOverlaysAndTheme(t *testing.T) {
	m := newTestModel(t, pizzaAnalyzer(t))

	m, _ = update(t, m, runeKey("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m, _ = update(t, m, runeKey("x"))
	if m.showHelp {
		t.Fatalf("help overlay should close on any key")
	}

	m, _ = update(t, m, runeKey("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}

	m, cmd := update(t, m, runeKey("d"))
	if !m.showDiag || cmd == nil {
		t.Fatalf("diagnostics overlay not opened")
	}
	if view := m.View(); !strings.Contains(view, "Diagnostic logging is off") {
		t.Fatalf("diagnostics view should explain that logging is off")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showDiag {
		t.Fatalf("esc should close diagnostics")
	}
}

func TestDiagnosticsShowsLogTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodlens.log")
	line := `{"level":"warning","msg":"analysis failed","time":"2026-01-02T10:11:12.000Z"}` + "\n"
	if err := os.WriteFile(path, []byte(line), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := New(Options{Store: &state.Store{}, LogFile: path, StartDir: t.TempDir()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = update(t, m, runeKey("d"))

	m, _ = update(t, m, loadDiagnosticsCmd(path, m.diagGen)())
	if view := m.View(); !strings.Contains(view, "analysis failed") {
		t.Fatalf("diagnostics view missing log message")
	}

	// Results for an older overlay session are dropped.
	m, _ = update(t, m, diagnosticsMsg{gen: m.diagGen - 1, lines: []string{"stale"}})
	if strings.Contains(m.View(), "stale") {
		t.Fatalf("diagnostics applied an outdated result")
	}
}

func TestPrefsSavedOnThemeChangeAndSelection(t *testing.T) {
	var saved []prefs.Prefs
	m := New(Options{
		Analyzer:  pizzaAnalyzer(t),
		Store:     &state.Store{},
		StartDir:  t.TempDir(),
		SavePrefs: func(p prefs.Prefs) { saved = append(saved, p) },
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := update(t, m, runeKey("T"))
	runCmd(cmd)
	if len(saved) != 1 || saved[0].Theme != "Kanagawa" {
		t.Fatalf("saved = %+v, want Kanagawa theme", saved)
	}

	dir := t.TempDir()
	msgs := runCmd(loadImageCmd(writeTestPNG(t, dir, "soup.png")))
	m, cmd = update(t, m, msgs[0])
	runCmd(cmd)
	if len(saved) != 2 || saved[1].LastDir != dir || saved[1].Theme != "Kanagawa" {
		t.Fatalf("saved = %+v, want last_dir %q", saved, dir)
	}
	if m.startDir != dir {
		t.Fatalf("startDir = %q, want %q", m.startDir, dir)
	}
}
