// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/tradecheck/internal/checklist"
	"github.com/nibzard/tradecheck/internal/store"
)

var (
	morning   = time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	afternoon = time.Date(2026, 3, 2, 14, 30, 0, 0, time.Local)
)

// isolate keeps user config files and TRADECHECK_* variables out of tests.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("APPDATA", filepath.Join(home, "appdata"))
	for _, name := range []string{
		"TRADECHECK_FILE", "TRADECHECK_CUTOFF", "TRADECHECK_LOG_LEVEL",
		"TRADECHECK_LOG_FORMAT", "TRADECHECK_LOG_TIMESTAMPS", "TRADECHECK_LOG_CALLER",
	} {
		t.Setenv(name, "")
	}
}

type cli struct {
	t     *testing.T
	file  string
	now   time.Time
	stdin string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	isolate(t)
	return &cli{t: t, file: filepath.Join(t.TempDir(), "checklist.json"), now: morning}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"-file", c.file}, args...)
	err := run(context.Background(), full, strings.NewReader(c.stdin), &out, &errOut,
		func() time.Time { return c.now })
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%v: %v", args, err)
	}
	return out
}

func (c *cli) doc() *checklist.Document {
	c.t.Helper()
	doc, err := store.New(c.file).Load()
	if err != nil {
		c.t.Fatalf("load: %v", err)
	}
	return doc
}

func (c *cli) texts() []string {
	c.t.Helper()
	out := c.mustRun("list", "-plain")
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func (c *cli) exists() bool {
	_, err := os.Stat(c.file)
	return err == nil
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{{"--help"}, {"-h"}, {"--version"}, {"-v"}, {"help"}, {"version"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), args, strings.NewReader(""), &out, &bytes.Buffer{}, time.Now); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if out.Len() == 0 {
				t.Error("expected output")
			}
		})
	}

	t.Run("unknown command returns error", func(t *testing.T) {
		c := newCLI(t)
		_, err := c.run("unknown-command")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("invalid global flag", func(t *testing.T) {
		c := newCLI(t)
		if _, err := c.run("-cutoff", "noon", "list"); err == nil {
			t.Error("expected config error")
		}
	})
}

func TestListDefaults(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun()
	for _, want := range []string{
		"Trading Checklist",
		"2026-03-02  0/27 checked",
		"Finish your checklist before 09:00.",
		"[ ]  1. Are market conditions (volatility, trend) right for this trade?",
		"[ ] 27. ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if c.exists() {
		t.Error("list must not create the file")
	}
	if got := c.texts(); len(got) != 27 {
		t.Errorf("plain list: got %d lines", len(got))
	}
}

func TestAdd(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("add", "Check", "the", "VIX")
	if !strings.Contains(out, "Added 28. Check the VIX") {
		t.Errorf("add output: %q", out)
	}
	texts := c.texts()
	if texts[len(texts)-1] != "Check the VIX" {
		t.Errorf("last item: %q", texts[len(texts)-1])
	}

	out = c.mustRun("add", "   ")
	if !strings.Contains(out, "Nothing added") {
		t.Errorf("blank add output: %q", out)
	}
	if c.doc().Len() != 28 {
		t.Error("blank add changed the file")
	}
}

func TestCheckUncheck(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("check", "1", "3")
	if !strings.Contains(out, "2/27 checked") {
		t.Errorf("check output: %q", out)
	}
	doc := c.doc()
	if !doc.IsChecked(doc.Items[0].ID) || !doc.IsChecked(doc.Items[2].ID) || doc.IsChecked(doc.Items[1].ID) {
		t.Errorf("checked: %v", doc.CheckedIDs())
	}
	if doc.CheckedOn != "2026-03-02" {
		t.Errorf("checked_on: %q", doc.CheckedOn)
	}

	c.mustRun("uncheck", "1")
	if got := c.doc().CheckedCount(); got != 1 {
		t.Errorf("after uncheck: %d checked", got)
	}

	list := c.mustRun("list")
	if !strings.Contains(list, "[x]  3.") || !strings.Contains(list, "[ ]  1.") {
		t.Errorf("list does not show checks:\n%s", list)
	}

	tests := []struct {
		args    []string
		wantErr string
	}{
		{args: []string{"check", "99"}, wantErr: "no item at position 99"},
		{args: []string{"check", "abc"}, wantErr: "invalid position"},
		{args: []string{"check", "0"}, wantErr: "invalid position"},
		{args: []string{"check"}, wantErr: "no positions"},
	}
	for _, tt := range tests {
		if _, err := c.run(tt.args...); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%v: got %v, want %q", tt.args, err, tt.wantErr)
		}
	}
	if got := c.doc().CheckedCount(); got != 1 {
		t.Errorf("failed commands changed the file: %d checked", got)
	}
}

func TestReminderAfterCutoff(t *testing.T) {
	c := newCLI(t)
	c.now = afternoon

	out := c.mustRun("check", "1")
	if !strings.Contains(out, "Not all checklist items are completed.") {
		t.Errorf("expected warning: %q", out)
	}
	if _, err := c.run("remind", "-exit-code"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("remind -exit-code: got %v", err)
	}

	out = c.mustRun("check", "-all")
	if !strings.Contains(out, "All checklist items completed today.") {
		t.Errorf("expected success: %q", out)
	}
	if _, err := c.run("remind", "-exit-code"); err != nil {
		t.Errorf("remind after completion: %v", err)
	}

	c.now = morning
	out = c.mustRun("remind", "-exit-code")
	if !strings.Contains(out, "Finish your checklist before 09:00.") {
		t.Errorf("morning reminder: %q", out)
	}
}

func TestCutoffFlag(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("-cutoff", "07:30", "remind")
	if !strings.Contains(out, "Not all checklist items are completed.") {
		t.Errorf("08:00 is past a 07:30 cutoff: %q", out)
	}
}

func TestDoneAndReset(t *testing.T) {
	c := newCLI(t)
	c.mustRun("check", "1", "2", "3")

	c.mustRun("done", "5")
	doc := c.doc()
	if got := doc.CheckedIDs(); len(got) != 1 || got[0] != doc.Items[4].ID {
		t.Errorf("done: checked %v", got)
	}

	out := c.mustRun("reset")
	if !strings.Contains(out, "Cleared 1 checked item(s)") {
		t.Errorf("reset output: %q", out)
	}
	if c.doc().CheckedCount() != 0 {
		t.Error("reset left checked items")
	}
}

func TestNewDayClearsChecks(t *testing.T) {
	c := newCLI(t)
	c.mustRun("check", "1", "2")

	c.now = morning.AddDate(0, 0, 1)
	if out := c.mustRun("list"); !strings.Contains(out, "0/27 checked") {
		t.Errorf("list on a new day should show no checks:\n%s", out)
	}
	if c.doc().CheckedCount() != 2 {
		t.Error("list must not write")
	}

	c.mustRun("check", "3")
	doc := c.doc()
	if doc.CheckedCount() != 1 || doc.CheckedOn != "2026-03-03" {
		t.Errorf("after new-day check: %d checked on %q", doc.CheckedCount(), doc.CheckedOn)
	}
}

func TestRemove(t *testing.T) {
	c := newCLI(t)
	before := c.texts()
	c.mustRun("check", "2", "3")

	out := c.mustRun("rm", "1", "2")
	if !strings.Contains(out, "Removed 2 item(s)") {
		t.Errorf("rm output: %q", out)
	}
	doc := c.doc()
	if doc.Len() != 25 || doc.Items[0].Text != before[2] || doc.Items[0].Position != 1 {
		t.Errorf("after rm: first %+v, %d items", doc.Items[0], doc.Len())
	}
	if doc.CheckedCount() != 1 {
		t.Errorf("checked state of removed items kept: %v", doc.CheckedIDs())
	}

	c.mustRun("rm", "-text", before[3])
	if got := c.doc().FindByText(before[3]); len(got) != 0 {
		t.Error("rm -text did not remove the item")
	}

	if _, err := c.run("rm"); err == nil {
		t.Error("rm without arguments should fail")
	}
}

func TestReorder(t *testing.T) {
	c := newCLI(t)
	before := c.texts()
	c.mustRun("check", "1")

	out := c.mustRun("reorder", "3", "1")
	if !strings.Contains(out, "Reordered 2 item(s), removed 25") {
		t.Errorf("reorder output: %q", out)
	}
	got := c.texts()
	if len(got) != 2 || got[0] != before[2] || got[1] != before[0] {
		t.Errorf("order: %v", got)
	}
	doc := c.doc()
	if !doc.IsChecked(doc.Items[1].ID) {
		t.Error("checked state should follow the item")
	}

	if _, err := c.run("reorder"); err == nil {
		t.Error("reorder without items should fail")
	}
}

func TestReorderStdin(t *testing.T) {
	c := newCLI(t)
	c.mustRun("reorder", "-text", "a") // no match: empties the list
	c.mustRun("add", "Alpha")
	c.mustRun("add", "Beta")
	c.mustRun("add", "Gamma")

	c.stdin = "Gamma\n\nAlpha\nBeta\n"
	c.mustRun("reorder", "-stdin")
	if got := strings.Join(c.texts(), ","); got != "Gamma,Alpha,Beta" {
		t.Errorf("order: %s", got)
	}
}

func TestMove(t *testing.T) {
	c := newCLI(t)
	before := c.texts()

	tests := []struct {
		args []string
		pos  int
	}{
		{args: []string{"move", "1", "down"}, pos: 2},
		{args: []string{"move", "2", "up"}, pos: 1},
		{args: []string{"move", "1", "bottom"}, pos: 27},
		{args: []string{"move", "27", "top"}, pos: 1},
		{args: []string{"move", "1", "3"}, pos: 4},
		{args: []string{"move", "4", "-10"}, pos: 1},
	}
	for _, tt := range tests {
		c.mustRun(tt.args...)
		if got := c.texts()[tt.pos-1]; got != before[0] {
			t.Errorf("%v: position %d holds %q", tt.args, tt.pos, got)
		}
	}

	if _, err := c.run("move", "1", "sideways"); err == nil {
		t.Error("expected error for bad move")
	}
	if _, err := c.run("move", "1"); err == nil {
		t.Error("expected usage error")
	}
}

func TestParseErrorIsReported(t *testing.T) {
	c := newCLI(t)
	if err := os.WriteFile(c.file, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	var pe *store.ParseError
	if _, err := c.run("list"); !errors.As(err, &pe) {
		t.Errorf("list: expected ParseError, got %v", err)
	}
	if _, err := c.run("add", "x"); !errors.As(err, &pe) {
		t.Errorf("add: expected ParseError, got %v", err)
	}
	data, _ := os.ReadFile(c.file)
	if string(data) != "{broken" {
		t.Errorf("broken file was overwritten: %q", data)
	}

	out, err := c.run("doctor")
	if err == nil || !strings.Contains(out, "❌ Invalid") {
		t.Errorf("doctor: err=%v\n%s", err, out)
	}
}

func TestRenumberUpgradesLegacy(t *testing.T) {
	c := newCLI(t)
	if err := os.WriteFile(c.file, []byte(`{"items": ["B", "A"], "checked": ["A"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out := c.mustRun("doctor")
	if !strings.Contains(out, "Legacy format (schema version 0, 2 items)") {
		t.Errorf("doctor output:\n%s", out)
	}

	c.mustRun("renumber")
	data, err := os.ReadFile(c.file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"schema_version": 2`) {
		t.Errorf("file not upgraded:\n%s", data)
	}
	if out := c.mustRun("doctor"); !strings.Contains(out, "✅ OK (schema version 2, 2 items") {
		t.Errorf("doctor after renumber:\n%s", out)
	}
}

func TestDoctorMissingFile(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("doctor")
	for _, want := range []string{"Not found", "No config files", "Cutoff: 09:00 (default)", "All checks passed."} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("config")
	if !strings.Contains(out, "checklist_file = "+c.file+"  (flag)") {
		t.Errorf("config output:\n%s", out)
	}

	out = c.mustRun("config", "-example")
	if !strings.Contains(out, `cutoff = "09:00"`) {
		t.Errorf("example config:\n%s", out)
	}
}
