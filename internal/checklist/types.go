package checklist

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayLayout is the layout of Document.CheckedOn.
const DayLayout = "2006-01-02"

// Day formats t as a checklist day in t's location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// NewID returns a fresh random item ID.
func NewID() string {
	return uuid.NewString()
}

// Item is a single checklist prompt.
type Item struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// Document is the checklist plus the day's checked snapshot.
type Document struct {
	// CheckedOn is the day the checked set belongs to (DayLayout).
	CheckedOn string
	// Items is ordered by Position.
	Items []Item

	checked map[string]struct{}
	newID   func() string
}

// New returns an empty document. A nil idFunc uses NewID.
func New(idFunc func() string) *Document {
	if idFunc == nil {
		idFunc = NewID
	}
	return &Document{
		Items:   []Item{},
		checked: make(map[string]struct{}),
		newID:   idFunc,
	}
}

// Len returns the number of items.
func (d *Document) Len() int {
	return len(d.Items)
}

// Renumber assigns positions 1..N in slice order and returns items.
func Renumber(items []Item) []Item {
	for i := range items {
		items[i].Position = i + 1
	}
	return items
}

// SortByPosition orders items by position, keeping slice order for ties,
// then renumbers them.
func SortByPosition(items []Item) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return Renumber(items)
}

// Add appends a new item with the trimmed text. Blank text is ignored and
// reported with ok=false.
func (d *Document) Add(text string) (item Item, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, false
	}
	item = Item{
		ID:       d.nextID(),
		Position: len(d.Items) + 1,
		Text:     text,
	}
	d.Items = append(d.Items, item)
	return item, true
}

// Reorder rebuilds the list in the order given by texts. Each text takes the
// first unused item with exactly that text; texts without a match are
// skipped and items no text claims are dropped. It returns the dropped items.
func (d *Document) Reorder(texts []string) []Item {
	used := make([]bool, len(d.Items))
	next := make([]Item, 0, len(texts))
	for _, text := range texts {
		for i, item := range d.Items {
			if used[i] || item.Text != text {
				continue
			}
			used[i] = true
			next = append(next, item)
			break
		}
	}
	return d.replace(next, used)
}

// ReorderIDs is Reorder keyed by item ID.
func (d *Document) ReorderIDs(ids []string) []Item {
	index := d.indexByID()
	used := make([]bool, len(d.Items))
	next := make([]Item, 0, len(ids))
	for _, id := range ids {
		i, ok := index[id]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		next = append(next, d.Items[i])
	}
	return d.replace(next, used)
}

func (d *Document) replace(next []Item, used []bool) []Item {
	var dropped []Item
	for i, item := range d.Items {
		if !used[i] {
			dropped = append(dropped, item)
		}
	}
	d.Items = Renumber(next)
	d.Prune()
	return dropped
}

// Move shifts the item with id by delta places, clamped to the list bounds.
// It reports whether the item moved.
func (d *Document) Move(id string, delta int) bool {
	from := -1
	for i, item := range d.Items {
		if item.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(d.Items)-1 {
		to = len(d.Items) - 1
	}
	if to == from {
		return false
	}
	item := d.Items[from]
	if to < from {
		copy(d.Items[to+1:from+1], d.Items[to:from])
	} else {
		copy(d.Items[from:to], d.Items[from+1:to+1])
	}
	d.Items[to] = item
	Renumber(d.Items)
	return true
}

// Delete removes every item whose text is in texts and returns how many were
// removed.
func (d *Document) Delete(texts []string) int {
	remove := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		remove[text] = struct{}{}
	}
	return d.deleteWhere(func(item Item) bool {
		_, ok := remove[item.Text]
		return ok
	})
}

// DeleteIDs removes the items with the given IDs.
func (d *Document) DeleteIDs(ids []string) int {
	remove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}
	return d.deleteWhere(func(item Item) bool {
		_, ok := remove[item.ID]
		return ok
	})
}

func (d *Document) deleteWhere(match func(Item) bool) int {
	kept := d.Items[:0]
	removed := 0
	for _, item := range d.Items {
		if match(item) {
			delete(d.checked, item.ID)
			removed++
			continue
		}
		kept = append(kept, item)
	}
	d.Items = Renumber(kept)
	return removed
}

// ToggleChecked sets whether the item with id is checked. It returns false
// for an unknown id.
func (d *Document) ToggleChecked(id string, checked bool) bool {
	if _, ok := d.indexByID()[id]; !ok {
		return false
	}
	if checked {
		if d.checked == nil {
			d.checked = make(map[string]struct{})
		}
		d.checked[id] = struct{}{}
	} else {
		delete(d.checked, id)
	}
	return true
}

// IsChecked reports whether the item with id is checked.
func (d *Document) IsChecked(id string) bool {
	_, ok := d.checked[id]
	return ok
}

// SetChecked replaces the checked set with ids. IDs that name no item are
// ignored.
func (d *Document) SetChecked(ids []string) {
	d.checked = make(map[string]struct{}, len(ids))
	index := d.indexByID()
	for _, id := range ids {
		if _, ok := index[id]; ok {
			d.checked[id] = struct{}{}
		}
	}
}

// CheckedIDs returns the checked IDs in item order.
func (d *Document) CheckedIDs() []string {
	ids := make([]string, 0, len(d.checked))
	for _, item := range d.Items {
		if _, ok := d.checked[item.ID]; ok {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// CheckedCount returns the number of checked items.
func (d *Document) CheckedCount() int {
	return len(d.CheckedIDs())
}

// Prune drops checked IDs that no longer name an item.
func (d *Document) Prune() {
	d.SetChecked(d.CheckedIDs())
}

// StartDay clears the checked set when day differs from CheckedOn.
// It reports whether the set was reset.
func (d *Document) StartDay(day string) bool {
	if d.CheckedOn == day {
		return false
	}
	d.CheckedOn = day
	if len(d.checked) == 0 {
		return false
	}
	d.checked = make(map[string]struct{})
	return true
}

// AllChecked reports whether there is at least one item and every item is
// checked.
func (d *Document) AllChecked() bool {
	if len(d.Items) == 0 {
		return false
	}
	for _, item := range d.Items {
		if _, ok := d.checked[item.ID]; !ok {
			return false
		}
	}
	return true
}

// ItemAt returns the item at a 1-based position.
func (d *Document) ItemAt(position int) (Item, bool) {
	if position < 1 || position > len(d.Items) {
		return Item{}, false
	}
	return d.Items[position-1], true
}

// FindByText returns every item whose text matches exactly.
func (d *Document) FindByText(text string) []Item {
	var found []Item
	for _, item := range d.Items {
		if item.Text == text {
			found = append(found, item)
		}
	}
	return found
}

// Texts returns item texts in order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Items))
	for i, item := range d.Items {
		texts[i] = item.Text
	}
	return texts
}

func (d *Document) nextID() string {
	if d.newID == nil {
		return NewID()
	}
	return d.newID()
}

func (d *Document) indexByID() map[string]int {
	index := make(map[string]int, len(d.Items))
	for i, item := range d.Items {
		index[item.ID] = i
	}
	return index
}
