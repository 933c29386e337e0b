// Package ui provides the interactive terminal checklist.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tradecheck/internal/checklist"
	"github.com/nibzard/tradecheck/internal/reminder"
	"github.com/nibzard/tradecheck/internal/store"
)

var (
	errBlank = errors.New("item text is blank")
	errStale = errors.New("item no longer exists; reload with r")
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	watch bool
	now   func() time.Time
}

// WithWatch reloads the checklist when the file changes on disk.
func WithWatch(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.watch = enabled
	}
}

// WithClock overrides the clock used for the reminder and daily reset.
func WithClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		c.now = now
	}
}

// RunTUI starts the interactive checklist on the given store.
func RunTUI(ctx context.Context, st *store.Store, cutoff reminder.Cutoff, opts ...TUIOption) error {
	c := &tuiConfig{watch: true, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(st, cutoff, c)
	if c.watch {
		fw, err := watchFile(st.Path())
		if err != nil {
			model.status = "live reload disabled: " + err.Error()
		} else {
			model.watcher = fw
			defer fw.Close()
		}
	}
	return runProgram(ctx, model)
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

type tuiModel struct {
	store        *store.Store
	cutoff       reminder.Cutoff
	now          func() time.Time
	keys         KeyMap
	theme        Theme
	help         help.Model
	input        textinput.Model
	watcher      *fileWatcher
	doc          *checklist.Document
	loadErr      error
	cursor       int
	mode         mode
	status       string
	height       int
	tickInterval time.Duration
}

type tickMsg time.Time

type fileChangedMsg struct{}

type watchErrMsg struct {
	err error
}

func newTUIModel(st *store.Store, cutoff reminder.Cutoff, c *tuiConfig) *tuiModel {
	now := c.now
	if now == nil {
		now = time.Now
	}
	input := textinput.New()
	input.Placeholder = "new checklist item"
	input.CharLimit = 200

	return &tuiModel{
		store:        st,
		cutoff:       cutoff,
		now:          now,
		keys:         DefaultKeyMap(),
		theme:        NewTheme(nil),
		help:         help.New(),
		input:        input,
		tickInterval: 30 * time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tea.Batch(tickCmd(m.tickInterval), m.waitForChange())
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	case fileChangedMsg:
		m.refresh()
		return m, m.waitForChange()
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		return m, m.waitForChange()
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.doc != nil && m.cursor < m.doc.Len()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.refresh()
		if m.loadErr == nil {
			m.status = "reloaded"
		}
		return m, nil
	}

	if m.loadErr != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Reset()
		m.status = ""
		return m, m.input.Focus()
	}

	item, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.apply(func(d *checklist.Document) error {
			if !d.ToggleChecked(item.ID, !d.IsChecked(item.ID)) {
				return errStale
			}
			return nil
		})
	case key.Matches(msg, m.keys.Delete):
		m.mode = modeConfirmDelete
		m.status = ""
	case key.Matches(msg, m.keys.MoveUp):
		m.move(item.ID, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.move(item.ID, 1)
	}
	return m, nil
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.mode = modeList
		m.input.Blur()
		if strings.TrimSpace(text) == "" {
			m.status = "nothing added: item text is blank"
			return m, nil
		}
		var added checklist.Item
		if m.apply(func(d *checklist.Document) error {
			item, ok := d.Add(text)
			if !ok {
				return errBlank
			}
			added = item
			return nil
		}) {
			m.cursor = added.Position - 1
			m.status = fmt.Sprintf("added %q", added.Text)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if !key.Matches(msg, m.keys.Confirm) {
		m.status = "delete cancelled"
		return m, nil
	}
	item, ok := m.selected()
	if !ok {
		return m, nil
	}
	if m.apply(func(d *checklist.Document) error {
		if d.DeleteIDs([]string{item.ID}) == 0 {
			return errStale
		}
		return nil
	}) {
		m.status = fmt.Sprintf("deleted %q", item.Text)
	}
	return m, nil
}

func (m *tuiModel) move(id string, delta int) {
	if m.cursor+delta < 0 || m.cursor+delta >= m.doc.Len() {
		return
	}
	if !m.apply(func(d *checklist.Document) error {
		if !hasItem(d, id) {
			return errStale
		}
		d.Move(id, delta)
		return nil
	}) {
		return
	}
	for i, it := range m.doc.Items {
		if it.ID == id {
			m.cursor = i
			break
		}
	}
}

// apply runs one load-modify-save cycle and reports whether it was saved.
func (m *tuiModel) apply(fn func(d *checklist.Document) error) bool {
	day := checklist.Day(m.now())
	doc, err := m.store.Update(func(d *checklist.Document) error {
		d.StartDay(day)
		return fn(d)
	})
	if err != nil {
		var pe *store.ParseError
		if errors.As(err, &pe) {
			m.loadErr = err
		}
		m.status = "error: " + err.Error()
		return false
	}
	m.doc = doc
	m.loadErr = nil
	m.clampCursor()
	return true
}

func (m *tuiModel) refresh() {
	doc, info, err := m.store.Open()
	if err != nil {
		m.loadErr = err
		return
	}
	switch {
	case !info.Exists:
		m.status = "created " + m.store.Path()
	case info.Version != store.VersionCurrent:
		m.status = fmt.Sprintf("upgraded %s to schema version %d", m.store.Path(), store.VersionCurrent)
	}
	doc.StartDay(checklist.Day(m.now()))
	m.doc = doc
	m.loadErr = nil
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	if m.doc == nil || m.doc.Len() == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= m.doc.Len() {
		m.cursor = m.doc.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selected() (checklist.Item, bool) {
	if m.doc == nil || m.cursor < 0 || m.cursor >= m.doc.Len() {
		return checklist.Item{}, false
	}
	return m.doc.Items[m.cursor], true
}

func hasItem(d *checklist.Document, id string) bool {
	for _, it := range d.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (m *tuiModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes, errs := m.watcher.Changes(), m.watcher.Errors()
	return func() tea.Msg {
		select {
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.loadErr != nil {
		b.WriteString(m.theme.ErrorStyle.Render("Error loading checklist:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		b.WriteString("Fix or remove the file, then press r to reload.\n\n")
		m.writeFooter(&b)
		return b.String()
	}
	if m.doc == nil {
		b.WriteString("Loading...\n\n")
		m.writeFooter(&b)
		return b.String()
	}

	m.writeItems(&b)
	m.writePrompt(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	now := m.now()
	b.WriteString(m.theme.TitleStyle.Render("Trading Checklist") + "\n")
	b.WriteString(m.theme.Reminder(reminder.Evaluate(now, m.cutoff, m.doc)) + "\n")
	if m.doc != nil {
		b.WriteString(m.theme.MutedStyle.Render(fmt.Sprintf("%s  %d/%d checked",
			checklist.Day(now), m.doc.CheckedCount(), m.doc.Len())) + "\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeItems(b *strings.Builder) {
	if m.doc.Len() == 0 {
		b.WriteString("  No checklist items. Press a to add one.\n\n")
		return
	}
	start, end := visibleRange(m.doc.Len(), m.cursor, m.listRows())
	if start > 0 {
		b.WriteString(m.theme.MutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)) + "\n")
	}
	for i := start; i < end; i++ {
		it := m.doc.Items[i]
		marker := "  "
		if i == m.cursor {
			marker = m.theme.CursorStyle.Render("> ")
		}
		fmt.Fprintf(b, "%s%s %2d. %s\n", marker, m.theme.Box(m.doc.IsChecked(it.ID)), it.Position, it.Text)
	}
	if rest := m.doc.Len() - end; rest > 0 {
		b.WriteString(m.theme.MutedStyle.Render(fmt.Sprintf("  ↓ %d more", rest)) + "\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) writePrompt(b *strings.Builder) {
	switch m.mode {
	case modeAdd:
		b.WriteString("Add: " + m.input.View() + "\n\n")
	case modeConfirmDelete:
		if item, ok := m.selected(); ok {
			fmt.Fprintf(b, "Delete %q? (y/N)\n\n", item.Text)
		}
	}
	if m.status != "" {
		b.WriteString(m.theme.MutedStyle.Render(m.status) + "\n\n")
	}
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	b.WriteString(m.help.View(m.keys) + "\n")
}

// listRows is the number of item rows that fit below the header and above
// the prompt and help lines. Zero means no limit.
func (m *tuiModel) listRows() int {
	if m.height == 0 {
		return 0
	}
	rows := m.height - 12
	if rows < 3 {
		rows = 3
	}
	return rows
}

// visibleRange returns the window [start, end) of n rows that keeps cursor
// visible.
func visibleRange(n, cursor, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
