package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tradecheck/internal/checklist"
	"github.com/nibzard/tradecheck/internal/reminder"
	"github.com/nibzard/tradecheck/internal/store"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("I%d", n)
	}
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestModel(t *testing.T) (*tuiModel, *store.Store, *clock) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.json")
	st := store.New(path, store.WithIDFunc(seqIDs()))
	c := &clock{t: time.Date(2026, 10, 16, 8, 0, 0, 0, time.Local)}
	m := newTUIModel(st, reminder.DefaultCutoff, &tuiConfig{now: c.now})
	m.Init()
	return m, st, c
}

func press(m *tuiModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func loadDoc(t *testing.T, st *store.Store) *checklist.Document {
	t.Helper()
	doc, err := st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestTUIStartsWithDefaults(t *testing.T) {
	m, st, _ := newTestModel(t)

	if m.loadErr != nil {
		t.Fatalf("loadErr: %v", m.loadErr)
	}
	if m.doc.Len() != len(checklist.DefaultPrompts()) {
		t.Errorf("items: got %d", m.doc.Len())
	}
	if !st.Exists() || !strings.Contains(m.status, "created") {
		t.Errorf("opening should create the file, status %q", m.status)
	}

	view := m.View()
	if !strings.Contains(view, "Finish your checklist before 09:00.") {
		t.Errorf("view missing reminder:\n%s", view)
	}
	if !strings.Contains(view, "0/27 checked") {
		t.Errorf("view missing progress:\n%s", view)
	}
}

func TestTUICursor(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, "k")
	if m.cursor != 0 {
		t.Errorf("cursor above top: got %d", m.cursor)
	}
	press(m, "j", "j", "j", "k")
	if m.cursor != 2 {
		t.Errorf("cursor: got %d, want 2", m.cursor)
	}
}

func TestTUIToggle(t *testing.T) {
	m, st, _ := newTestModel(t)

	press(m, "j", "x")
	id := m.doc.Items[1].ID
	if !loadDoc(t, st).IsChecked(id) {
		t.Fatal("toggle did not save checked state")
	}
	if !m.doc.IsChecked(id) {
		t.Error("model doc not updated")
	}

	press(m, "x")
	if loadDoc(t, st).IsChecked(id) {
		t.Error("second toggle did not uncheck")
	}
}

func TestTUIAdd(t *testing.T) {
	m, st, _ := newTestModel(t)

	press(m, "a", "Check VIX", "enter")
	if m.mode != modeList {
		t.Errorf("mode: got %v, want list", m.mode)
	}
	doc := loadDoc(t, st)
	last := doc.Items[doc.Len()-1]
	if last.Text != "Check VIX" || last.Position != 28 {
		t.Errorf("last item: %+v", last)
	}
	if m.cursor != 27 {
		t.Errorf("cursor should follow the new item, got %d", m.cursor)
	}
	if !strings.Contains(m.status, "Check VIX") {
		t.Errorf("status: %q", m.status)
	}
}

func TestTUIAddCancelAndBlank(t *testing.T) {
	m, st, _ := newTestModel(t)

	press(m, "a", "ignored", "esc")
	if m.mode != modeList || loadDoc(t, st).Len() != 27 {
		t.Fatal("esc should cancel without saving")
	}

	press(m, "a", "   ", "enter")
	if loadDoc(t, st).Len() != 27 {
		t.Error("blank add should not save")
	}
	if !strings.Contains(m.status, "blank") {
		t.Errorf("status: %q", m.status)
	}
}

func TestTUIDelete(t *testing.T) {
	m, st, _ := newTestModel(t)
	first := m.doc.Items[0]

	press(m, "d", "n")
	if loadDoc(t, st).Len() != 27 || m.doc.Len() != 27 {
		t.Fatal("declined delete should not change anything")
	}

	press(m, "d")
	if !strings.Contains(m.View(), "Delete ") {
		t.Errorf("confirm prompt not shown:\n%s", m.View())
	}
	press(m, "y")
	doc := loadDoc(t, st)
	if doc.Len() != 26 {
		t.Fatalf("items after delete: got %d", doc.Len())
	}
	if got := doc.FindByText(first.Text); len(got) != 0 {
		t.Error("deleted item still present")
	}
	if doc.Items[0].Position != 1 {
		t.Errorf("positions not renumbered: %+v", doc.Items[0])
	}
}

func TestTUIMove(t *testing.T) {
	m, st, _ := newTestModel(t)
	first := m.doc.Items[0]

	press(m, "K")
	if loadDoc(t, st).Items[0].ID != first.ID {
		t.Error("moving the top item up should be a no-op")
	}

	press(m, "J", "J")
	doc := loadDoc(t, st)
	if doc.Items[2].ID != first.ID || doc.Items[2].Position != 3 {
		t.Errorf("item not moved: %+v", doc.Items[2])
	}
	if m.cursor != 2 {
		t.Errorf("cursor should follow the item, got %d", m.cursor)
	}
}

func TestTUIParseErrorBlocksEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := store.New(path)
	m := newTUIModel(st, reminder.DefaultCutoff, &tuiConfig{})
	m.Init()

	if m.loadErr == nil {
		t.Fatal("expected load error")
	}
	press(m, "x", "a")
	if m.mode != modeList {
		t.Error("edits should be disabled while the file is broken")
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{not json" {
		t.Errorf("file was modified: %q, %v", data, err)
	}
	if !strings.Contains(m.View(), "Error loading checklist") {
		t.Errorf("view missing error:\n%s", m.View())
	}

	if err := os.WriteFile(path, []byte(`["one"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	press(m, "r")
	if m.loadErr != nil || m.doc.Len() != 1 {
		t.Errorf("reload after fix: err=%v", m.loadErr)
	}
}

func TestTUIDayRollover(t *testing.T) {
	m, st, c := newTestModel(t)
	press(m, "x")
	if m.doc.CheckedCount() != 1 {
		t.Fatal("setup: toggle failed")
	}

	c.t = c.t.Add(24 * time.Hour)
	m.Update(tickMsg(c.t))
	if m.doc.CheckedCount() != 0 {
		t.Error("checked state should reset on a new day")
	}
	if loadDoc(t, st).CheckedCount() != 1 {
		t.Error("tick should not write the file")
	}
}

func TestTUIReminderKinds(t *testing.T) {
	m, _, c := newTestModel(t)
	c.t = time.Date(2026, 10, 16, 10, 0, 0, 0, time.Local)

	if !strings.Contains(m.View(), "Not all checklist items are completed.") {
		t.Errorf("expected warning:\n%s", m.View())
	}

	m.apply(func(d *checklist.Document) error {
		for _, it := range d.Items {
			d.ToggleChecked(it.ID, true)
		}
		return nil
	})
	if !strings.Contains(m.View(), "All checklist items completed today.") {
		t.Errorf("expected success:\n%s", m.View())
	}
}

func TestTUIExternalChange(t *testing.T) {
	m, st, _ := newTestModel(t)

	other := store.New(st.Path())
	if _, err := other.Update(func(d *checklist.Document) error {
		d.Reorder([]string{d.Items[3].Text})
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	m.Update(fileChangedMsg{})
	if m.doc.Len() != 1 {
		t.Errorf("external change not picked up: %d items", m.doc.Len())
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		n, cursor, rows int
		start, end      int
	}{
		{n: 5, cursor: 0, rows: 0, start: 0, end: 5},
		{n: 5, cursor: 4, rows: 10, start: 0, end: 5},
		{n: 27, cursor: 0, rows: 10, start: 0, end: 10},
		{n: 27, cursor: 15, rows: 10, start: 10, end: 20},
		{n: 27, cursor: 26, rows: 10, start: 17, end: 27},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.n, tt.cursor, tt.rows)
		if start != tt.start || end != tt.end {
			t.Errorf("visibleRange(%d, %d, %d) = %d, %d; want %d, %d",
				tt.n, tt.cursor, tt.rows, start, end, tt.start, tt.end)
		}
	}
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.json")
	fw, err := watchFile(path)
	if err != nil {
		t.Fatalf("watchFile: %v", err)
	}
	defer fw.Close()

	if err := store.New(path).Save(checklist.New(nil)); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fw.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
