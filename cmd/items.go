package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tradecheck/internal/checklist"
	"github.com/nibzard/tradecheck/internal/reminder"
)

var errBlankText = errors.New("item text is blank")

// listCommand prints the checklist with the reminder. It never writes.
func (a *app) listCommand(args []string) error {
	fs := a.newFlagSet("list")
	plain := fs.Bool("plain", false, "Print item texts only, one per line")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	doc, err := a.load()
	if err != nil {
		return err
	}
	if *plain {
		for _, text := range doc.Texts() {
			fmt.Fprintln(a.out, text)
		}
		return nil
	}

	now := a.now()
	fmt.Fprintf(a.out, "%s  %s  %d/%d checked\n",
		a.theme.TitleStyle.Render("Trading Checklist"),
		checklist.Day(now), doc.CheckedCount(), doc.Len())
	fmt.Fprintln(a.out, a.theme.Reminder(reminder.Evaluate(now, a.cfg.GetCutoff(), doc)))
	fmt.Fprintln(a.out)
	a.printItems(doc)
	return nil
}

func (a *app) printItems(doc *checklist.Document) {
	if doc.Len() == 0 {
		fmt.Fprintln(a.out, "No checklist items. Add one with: tradecheck add <text>")
		return
	}
	for _, it := range doc.Items {
		fmt.Fprintf(a.out, "%s %2d. %s\n", a.theme.Box(doc.IsChecked(it.ID)), it.Position, it.Text)
	}
}

func (a *app) addCommand(args []string) error {
	fs := a.newFlagSet("add")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	text := joinArgs(fs.Args())

	var added checklist.Item
	_, err := a.update(func(doc *checklist.Document) error {
		item, ok := doc.Add(text)
		if !ok {
			return errBlankText
		}
		added = item
		return nil
	})
	if errors.Is(err, errBlankText) {
		fmt.Fprintln(a.out, "Nothing added: item text is blank")
		return nil
	}
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	fmt.Fprintf(a.out, "Added %d. %s\n", added.Position, added.Text)
	return nil
}

func (a *app) removeCommand(args []string) error {
	fs := a.newFlagSet("rm")
	byText := fs.Bool("text", false, "Treat arguments as exact item texts")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("rm: no items given")
	}

	var positions []int
	if !*byText {
		var err error
		if positions, err = parsePositions(fs.Args()); err != nil {
			return fmt.Errorf("rm: %w", err)
		}
	}

	removed := 0
	_, err := a.update(func(doc *checklist.Document) error {
		if *byText {
			removed = doc.Delete(fs.Args())
			return nil
		}
		items, err := resolve(doc, positions)
		if err != nil {
			return err
		}
		removed = doc.DeleteIDs(ids(items))
		return nil
	})
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	fmt.Fprintf(a.out, "Removed %d item(s)\n", removed)
	return nil
}

func (a *app) reorderCommand(args []string) error {
	fs := a.newFlagSet("reorder")
	byText := fs.Bool("text", false, "Treat arguments as exact item texts")
	fromStdin := fs.Bool("stdin", false, "Read item texts from stdin, one per line")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	var texts []string
	var positions []int
	switch {
	case *fromStdin:
		var err error
		if texts, err = a.readLines(); err != nil {
			return fmt.Errorf("reorder: reading stdin: %w", err)
		}
	case *byText:
		texts = fs.Args()
	default:
		var err error
		if positions, err = parsePositions(fs.Args()); err != nil {
			return fmt.Errorf("reorder: %w", err)
		}
	}
	if len(texts) == 0 && len(positions) == 0 {
		return fmt.Errorf("reorder: no items given; use 'tradecheck reset' or 'rm' to clear items")
	}

	var dropped []checklist.Item
	doc, err := a.update(func(doc *checklist.Document) error {
		if texts != nil {
			dropped = doc.Reorder(texts)
			return nil
		}
		items, err := resolve(doc, positions)
		if err != nil {
			return err
		}
		dropped = doc.ReorderIDs(ids(items))
		return nil
	})
	if err != nil {
		return fmt.Errorf("reorder: %w", err)
	}

	for _, it := range dropped {
		a.logger.Info("dropped item not in new order", "text", it.Text)
	}
	fmt.Fprintf(a.out, "Reordered %d item(s)", doc.Len())
	if len(dropped) > 0 {
		fmt.Fprintf(a.out, ", removed %d", len(dropped))
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) moveCommand(args []string) error {
	fs := a.newFlagSet("move")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("move: usage: tradecheck move <pos> <n|up|down|top|bottom>")
	}
	positions, err := parsePositions(fs.Args()[:1])
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}

	var moved checklist.Item
	doc, err := a.update(func(doc *checklist.Document) error {
		items, err := resolve(doc, positions)
		if err != nil {
			return err
		}
		delta, err := parseDelta(fs.Arg(1), doc.Len())
		if err != nil {
			return err
		}
		moved = items[0]
		doc.Move(moved.ID, delta)
		return nil
	})
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	for _, it := range doc.Items {
		if it.ID == moved.ID {
			fmt.Fprintf(a.out, "Moved to %d. %s\n", it.Position, it.Text)
		}
	}
	return nil
}

func (a *app) renumberCommand(args []string) error {
	fs := a.newFlagSet("renumber")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	doc, err := a.update(func(doc *checklist.Document) error {
		doc.Items = checklist.Renumber(doc.Items)
		return nil
	})
	if err != nil {
		return fmt.Errorf("renumber: %w", err)
	}
	fmt.Fprintf(a.out, "Renumbered %d item(s) in %s\n", doc.Len(), a.store.Path())
	return nil
}

// parsePositions parses 1-based item positions.
func parsePositions(args []string) ([]int, error) {
	positions := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid position %q", arg)
		}
		positions = append(positions, n)
	}
	return positions, nil
}

// resolve maps positions to items in doc.
func resolve(doc *checklist.Document, positions []int) ([]checklist.Item, error) {
	items := make([]checklist.Item, 0, len(positions))
	for _, pos := range positions {
		item, ok := doc.ItemAt(pos)
		if !ok {
			return nil, fmt.Errorf("no item at position %d (checklist has %d)", pos, doc.Len())
		}
		items = append(items, item)
	}
	return items, nil
}

func ids(items []checklist.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// parseDelta turns a move target into a position delta.
func parseDelta(s string, n int) (int, error) {
	switch strings.ToLower(s) {
	case "up":
		return -1, nil
	case "down":
		return 1, nil
	case "top":
		return -n, nil
	case "bottom":
		return n, nil
	}
	delta, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid move %q", s)
	}
	return delta, nil
}

func (a *app) readLines() ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
