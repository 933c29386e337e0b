package cmd

import (
	"errors"
	"fmt"

	"github.com/nibzard/tradecheck/internal/checklist"
	"github.com/nibzard/tradecheck/internal/reminder"
)

// ErrIncomplete is returned by 'remind -exit-code' when the checklist is
// not finished after the cutoff.
var ErrIncomplete = errors.New("checklist incomplete")

func (a *app) checkCommand(args []string, checked bool) error {
	name := "check"
	if !checked {
		name = "uncheck"
	}
	fs := a.newFlagSet(name)
	all := fs.Bool("all", false, "Apply to every item")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if !*all && fs.NArg() == 0 {
		return fmt.Errorf("%s: no positions given", name)
	}
	positions, err := parsePositions(fs.Args())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	doc, err := a.update(func(doc *checklist.Document) error {
		items := doc.Items
		if !*all {
			resolved, err := resolve(doc, positions)
			if err != nil {
				return err
			}
			items = resolved
		}
		for _, it := range items {
			doc.ToggleChecked(it.ID, checked)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.printProgress(doc)
	return nil
}

// doneCommand replaces today's checked set with exactly the given items.
func (a *app) doneCommand(args []string) error {
	fs := a.newFlagSet("done")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	positions, err := parsePositions(fs.Args())
	if err != nil {
		return fmt.Errorf("done: %w", err)
	}

	doc, err := a.update(func(doc *checklist.Document) error {
		items, err := resolve(doc, positions)
		if err != nil {
			return err
		}
		doc.SetChecked(ids(items))
		return nil
	})
	if err != nil {
		return fmt.Errorf("done: %w", err)
	}
	a.printProgress(doc)
	return nil
}

func (a *app) resetCommand(args []string) error {
	fs := a.newFlagSet("reset")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	cleared := 0
	_, err := a.update(func(doc *checklist.Document) error {
		cleared = doc.CheckedCount()
		doc.SetChecked(nil)
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Fprintf(a.out, "Cleared %d checked item(s)\n", cleared)
	return nil
}

func (a *app) remindCommand(args []string) error {
	fs := a.newFlagSet("remind")
	exitCode := fs.Bool("exit-code", false, "Return an error when the checklist is incomplete after the cutoff")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	doc, err := a.load()
	if err != nil {
		return err
	}
	r := reminder.Evaluate(a.now(), a.cfg.GetCutoff(), doc)
	fmt.Fprintln(a.out, a.theme.Reminder(r))
	if *exitCode && r.Kind == reminder.KindWarning {
		return ErrIncomplete
	}
	return nil
}

func (a *app) printProgress(doc *checklist.Document) {
	fmt.Fprintf(a.out, "%d/%d checked\n", doc.CheckedCount(), doc.Len())
	fmt.Fprintln(a.out, a.theme.Reminder(reminder.Evaluate(a.now(), a.cfg.GetCutoff(), doc)))
}
