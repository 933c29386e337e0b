package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nibzard/tradecheck/internal/checklist"
)

// Schema versions of the checklist file. Versions 0 and 1 carry no marker
// and are told apart by the shape of "items".
const (
	VersionStrings   = 0 // items: ["text", ...]
	VersionPositions = 1 // items: [{"position": 1, "text": "..."}, ...]
	VersionCurrent   = 2 // items carry ids, checked holds ids
)

// probe reads just enough to pick a version.
type probe struct {
	SchemaVersion *int            `json:"schema_version"`
	Items         json.RawMessage `json:"items"`
	Checked       []string        `json:"checked"`
}

// itemV1 is an item from an unversioned file. Position may be absent.
type itemV1 struct {
	Position *int   `json:"position"`
	Text     string `json:"text"`
}

// fileV2 is the persisted shape written by Save.
type fileV2 struct {
	SchemaVersion int              `json:"schema_version"`
	CheckedOn     string           `json:"checked_on,omitempty"`
	Items         []checklist.Item `json:"items"`
	Checked       []string         `json:"checked"`
}

// legacy is the decoded form of an unversioned file, upgraded to v1 items.
type legacy struct {
	version int
	items   []itemV1
	checked []string
}

// sniffLegacy decodes an unversioned document.
func sniffLegacy(p probe) (*legacy, error) {
	out := &legacy{version: VersionPositions, checked: p.Checked}

	raw := bytes.TrimSpace(p.Items)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	if len(elems) == 0 {
		return out, nil
	}

	first := bytes.TrimSpace(elems[0])
	switch {
	case len(first) > 0 && first[0] == '"':
		var texts []string
		if err := json.Unmarshal(raw, &texts); err != nil {
			return nil, fmt.Errorf("items: mixed legacy item shapes: %w", err)
		}
		out.version = VersionStrings
		out.items = upgradeV0(texts)
	case len(first) > 0 && first[0] == '{':
		if err := json.Unmarshal(raw, &out.items); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
	default:
		return nil, fmt.Errorf("items: unrecognized item shape %s", first)
	}
	return out, nil
}

// upgradeV0 assigns positions to a plain list of texts.
func upgradeV0(texts []string) []itemV1 {
	items := make([]itemV1, len(texts))
	for i, text := range texts {
		pos := i + 1
		items[i] = itemV1{Position: &pos, Text: text}
	}
	return items
}

// upgradeV1 turns positioned items into a current document. Missing
// positions take their index, blank texts are dropped, and the list is
// renumbered in file order; stored positions do not reorder it. Checked
// texts select every item that carries them.
func (s *Store) upgradeV1(l *legacy, checkedOn string) *checklist.Document {
	staged := make([]checklist.Item, 0, len(l.items))
	for i, it := range l.items {
		pos := i + 1
		if it.Position != nil {
			pos = *it.Position
		}
		if strings.TrimSpace(it.Text) == "" {
			s.logger.Warn("dropping blank legacy item", "index", i)
			continue
		}
		staged = append(staged, checklist.Item{Position: pos, Text: it.Text})
	}

	doc := checklist.New(s.newID)
	for i := range staged {
		staged[i].ID = s.newID()
	}
	doc.Items = checklist.Renumber(staged)

	checkedTexts := make(map[string]struct{}, len(l.checked))
	for _, text := range l.checked {
		checkedTexts[text] = struct{}{}
	}
	var ids []string
	for _, item := range doc.Items {
		if _, ok := checkedTexts[item.Text]; ok {
			ids = append(ids, item.ID)
		}
	}
	doc.SetChecked(ids)
	if len(ids) > 0 {
		doc.CheckedOn = checkedOn
	}
	return doc
}

// decodeCurrent builds a document from validated version 2 content.
func (s *Store) decodeCurrent(data []byte) (*checklist.Document, error) {
	if err := validateCurrent(data); err != nil {
		return nil, err
	}

	var f fileV2
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(f.Items))
	for i, item := range f.Items {
		if _, dup := seen[item.ID]; dup {
			return nil, &ValidationError{
				Path: fmt.Sprintf("items[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q", item.ID),
			}
		}
		seen[item.ID] = struct{}{}
	}

	doc := checklist.New(s.newID)
	doc.CheckedOn = f.CheckedOn
	if f.Items != nil {
		doc.Items = checklist.SortByPosition(f.Items)
	}
	doc.SetChecked(f.Checked)
	return doc, nil
}

// encodeCurrent renders doc in the version 2 layout: two-space indentation
// and a trailing newline.
func encodeCurrent(doc *checklist.Document) ([]byte, error) {
	items := doc.Items
	if items == nil {
		items = []checklist.Item{}
	}
	f := fileV2{
		SchemaVersion: VersionCurrent,
		CheckedOn:     doc.CheckedOn,
		Items:         items,
		Checked:       doc.CheckedIDs(),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
