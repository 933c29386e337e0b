// Package cmd implements the CLI command structure for tradecheck.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tradecheck/internal/checklist"
	"github.com/nibzard/tradecheck/internal/config"
	"github.com/nibzard/tradecheck/internal/store"
	"github.com/nibzard/tradecheck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every subcommand needs.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
	store  *store.Store
	theme  ui.Theme
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// Run executes the tradecheck CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr, time.Now)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, now func() time.Time) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tradecheck", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}

	a := &app{
		cws:    cws,
		cfg:    cws.Config,
		theme:  ui.NewTheme(lipgloss.NewRenderer(out)),
		in:     in,
		out:    out,
		errOut: errOut,
		now:    now,
	}
	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	a.logger = a.cfg.NewLogger(errOut)
	a.store = store.New(a.cfg.ChecklistFile, store.WithLogger(a.logger))

	// Determine the subcommand; with none, show the checklist.
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	a.logger.Debug("running command", "command", subcommand, "file", a.cfg.ChecklistFile)

	switch subcommand {
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "rm", "remove":
		return a.removeCommand(remainingArgs)
	case "reorder":
		return a.reorderCommand(remainingArgs)
	case "move", "mv":
		return a.moveCommand(remainingArgs)
	case "renumber":
		return a.renumberCommand(remainingArgs)
	case "check":
		return a.checkCommand(remainingArgs, true)
	case "uncheck":
		return a.checkCommand(remainingArgs, false)
	case "done":
		return a.doneCommand(remainingArgs)
	case "reset":
		return a.resetCommand(remainingArgs)
	case "remind":
		return a.remindCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, out)
		return nil
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newFlagSet returns a subcommand flag set that reports to stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tradecheck "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse parses subcommand flags. It reports done when -h was requested.
func parse(fs *flag.FlagSet, args []string) (done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// update runs one load-modify-save cycle for today's date.
func (a *app) update(fn func(doc *checklist.Document) error) (*checklist.Document, error) {
	day := checklist.Day(a.now())
	return a.store.Update(func(doc *checklist.Document) error {
		if doc.StartDay(day) {
			a.logger.Info("new day, cleared checked items", "day", day)
		}
		return fn(doc)
	})
}

// load reads the checklist for display, applying the daily reset in memory.
func (a *app) load() (*checklist.Document, error) {
	doc, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	doc.StartDay(checklist.Day(a.now()))
	return doc, nil
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "tradecheck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tradecheck - A daily pre-trade checklist")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tradecheck [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                 Show the checklist and today's reminder (default)")
	fmt.Fprintln(w, "  add <text>           Append an item")
	fmt.Fprintln(w, "  rm <pos>...          Remove items by position (-text to match by text)")
	fmt.Fprintln(w, "  reorder <pos>...     Rewrite the list in the given order; items left out are removed")
	fmt.Fprintln(w, "  move <pos> <n|up|down|top|bottom>")
	fmt.Fprintln(w, "                       Move one item")
	fmt.Fprintln(w, "  renumber             Rewrite the file with dense positions in the current format")
	fmt.Fprintln(w, "  check <pos>...       Check items (-all for every item)")
	fmt.Fprintln(w, "  uncheck <pos>...     Uncheck items (-all for every item)")
	fmt.Fprintln(w, "  done <pos>...        Set exactly these items as checked")
	fmt.Fprintln(w, "  reset                Clear today's checks")
	fmt.Fprintln(w, "  remind               Show the reminder (-exit-code fails when incomplete)")
	fmt.Fprintln(w, "  tui                  Launch the interactive checklist")
	fmt.Fprintln(w, "  doctor               Check the checklist file and configuration")
	fmt.Fprintln(w, "  config               Show effective configuration (-example for a template)")
	fmt.Fprintln(w, "  version              Show version information")
	fmt.Fprintln(w, "  help                 Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Positions are the 1-based numbers shown by 'tradecheck list'.")
}

// joinArgs joins args into one item text.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
