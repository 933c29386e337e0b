package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/tradecheck/internal/config"
	"github.com/nibzard/tradecheck/internal/logging"
	"github.com/nibzard/tradecheck/internal/store"
	"github.com/nibzard/tradecheck/internal/ui"
)

// doctorCommand checks the checklist file and configuration.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	ok := true
	fmt.Fprintln(a.out, "tradecheck doctor")
	fmt.Fprintln(a.out)

	fmt.Fprintln(a.out, "Checklist file:")
	fmt.Fprintf(a.out, "  %s\n", a.store.Path())
	info, err := a.store.Inspect()
	var pe *store.ParseError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintf(a.out, "  ❌ Invalid: %v\n", pe.Err)
		ok = false
	case err != nil:
		fmt.Fprintf(a.out, "  ❌ %v\n", err)
		ok = false
	case !info.Exists:
		fmt.Fprintf(a.out, "  ⚠️  Not found; the default checklist (%d items) will be used\n", info.Items)
	case info.Version != store.VersionCurrent:
		fmt.Fprintf(a.out, "  ⚠️  Legacy format (schema version %d, %d items); run 'tradecheck renumber' to upgrade\n",
			info.Version, info.Items)
	default:
		fmt.Fprintf(a.out, "  ✅ OK (schema version %d, %d items, %d checked)\n", info.Version, info.Items, info.Checked)
	}
	if !checkDir(a, filepath.Dir(a.store.Path())) {
		ok = false
	}
	fmt.Fprintln(a.out)

	fmt.Fprintln(a.out, "Configuration:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(a.out, "  No config files (using defaults)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(a.out, "  ✅ %s\n", f)
	}
	for _, key := range a.cws.Unknown {
		fmt.Fprintf(a.out, "  ⚠️  Unknown key %s\n", key)
	}
	fmt.Fprintf(a.out, "  Cutoff: %s (%s)\n", a.cfg.GetCutoff(), a.cws.Sources["cutoff"])
	fmt.Fprintf(a.out, "  Logging: %s, %s\n", a.cfg.LogLevel, a.cfg.LogFormat)
	fmt.Fprintln(a.out)

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(a.out, "All checks passed.")
	return nil
}

func checkDir(a *app, dir string) bool {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(a.out, "  ⚠️  Directory %s does not exist; it is created on first save\n", dir)
		return true
	case err != nil:
		fmt.Fprintf(a.out, "  ❌ Directory %s: %v\n", dir, err)
		return false
	case !info.IsDir():
		fmt.Fprintf(a.out, "  ❌ %s is not a directory\n", dir)
		return false
	}
	return true
}

func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}
	a.cws.Describe(a.out)
	return nil
}

func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	noWatch := fs.Bool("no-watch", false, "Do not reload when the file changes on disk")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen.
	st := store.New(a.cfg.ChecklistFile, store.WithLogger(logging.Discard()))
	return ui.RunTUI(ctx, st, a.cfg.GetCutoff(),
		ui.WithClock(a.now),
		ui.WithWatch(!*noWatch),
	)
}
