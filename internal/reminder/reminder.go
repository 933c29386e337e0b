// Package reminder computes the time-of-day checklist reminder.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/tradecheck/internal/checklist"
)

// Kind classifies a reminder.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
)

// Cutoff is a local clock time of day.
type Cutoff struct {
	Hour   int
	Minute int
}

// DefaultCutoff is 09:00.
var DefaultCutoff = Cutoff{Hour: 9}

// ParseCutoff parses "HH:MM" (24-hour clock).
func ParseCutoff(s string) (Cutoff, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Cutoff{}, fmt.Errorf("invalid cutoff %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return Cutoff{}, fmt.Errorf("invalid cutoff hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minute < 0 || minute > 59 {
		return Cutoff{}, fmt.Errorf("invalid cutoff minute in %q", s)
	}
	return Cutoff{Hour: hour, Minute: minute}, nil
}

// String formats the cutoff as HH:MM.
func (c Cutoff) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before reports whether t's clock time in its own location is earlier than c.
func (c Cutoff) Before(t time.Time) bool {
	h, m, _ := t.Clock()
	if h != c.Hour {
		return h < c.Hour
	}
	return m < c.Minute
}

// Reminder is the message to show for the current state.
type Reminder struct {
	Kind    Kind
	Message string
}

// Evaluate picks the reminder for now. Before the cutoff it always nudges to
// finish; afterwards it reports success only when the document has items and
// all of them are checked.
func Evaluate(now time.Time, cutoff Cutoff, doc *checklist.Document) Reminder {
	if cutoff.Before(now) {
		return Reminder{
			Kind:    KindInfo,
			Message: fmt.Sprintf("Finish your checklist before %s.", cutoff),
		}
	}
	if doc != nil && doc.AllChecked() {
		return Reminder{Kind: KindSuccess, Message: "All checklist items completed today."}
	}
	return Reminder{Kind: KindWarning, Message: "Not all checklist items are completed."}
}
