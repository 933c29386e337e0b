// Package store loads and saves the checklist file.
//
// The file is rewritten whole on every save. Writes go to a temporary file
// in the same directory that is then renamed over the target, so readers
// see either the old or the new document. There is no locking: with two
// writers the last one wins.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tradecheck/internal/checklist"
)

// DefaultFile is the checklist file name used when none is configured.
const DefaultFile = "trading_checklist.json"

// Store reads and writes one checklist file.
type Store struct {
	path   string
	logger *log.Logger
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for migration and save events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDFunc sets the generator for new item IDs.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns a Store for path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
		newID:  checklist.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the checklist file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the checklist file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Info describes the file as found on disk.
type Info struct {
	Exists  bool
	Version int // schema version detected before any upgrade
	Items   int
	Checked int
}

// Load reads the checklist. A missing file yields the default checklist.
// Legacy files are upgraded in memory; the upgrade is persisted by the
// next Save.
func (s *Store) Load() (*checklist.Document, error) {
	doc, _, err := s.load()
	return doc, err
}

// Inspect loads the checklist and reports what was found.
func (s *Store) Inspect() (Info, error) {
	doc, info, err := s.load()
	if err != nil {
		return info, err
	}
	info.Items = doc.Len()
	info.Checked = doc.CheckedCount()
	return info, nil
}

// Open loads the checklist like Load and then writes it back when the file
// was missing or in a legacy format, so item ids stay the same across later
// cycles. The returned Info describes the file as it was found.
func (s *Store) Open() (*checklist.Document, Info, error) {
	doc, info, err := s.load()
	if err != nil {
		return nil, info, err
	}
	info.Items = doc.Len()
	info.Checked = doc.CheckedCount()
	if info.Exists && info.Version == VersionCurrent {
		return doc, info, nil
	}
	if err := s.Save(doc); err != nil {
		return nil, info, err
	}
	return doc, info, nil
}

func (s *Store) load() (*checklist.Document, Info, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("checklist file not found, using defaults", "path", s.path)
		return checklist.NewDefault(s.newID), Info{Version: VersionCurrent}, nil
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("read checklist file: %w", err)
	}
	info := Info{Exists: true}

	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, info, &ParseError{Path: s.path, Err: err}
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, info, &ParseError{Path: s.path, Err: errors.New("top-level value is not an object")}
	}

	if p.SchemaVersion != nil {
		info.Version = *p.SchemaVersion
		if *p.SchemaVersion != VersionCurrent {
			return nil, info, &ParseError{
				Path: s.path,
				Err:  fmt.Errorf("unsupported schema_version %d", *p.SchemaVersion),
			}
		}
		doc, err := s.decodeCurrent(data)
		if err != nil {
			return nil, info, &ParseError{Path: s.path, Err: err}
		}
		return doc, info, nil
	}

	l, err := sniffLegacy(p)
	if err != nil {
		return nil, info, &ParseError{Path: s.path, Err: err}
	}
	info.Version = l.version

	checkedOn := ""
	if st, err := os.Stat(s.path); err == nil {
		checkedOn = checklist.Day(st.ModTime())
	}
	doc := s.upgradeV1(l, checkedOn)
	s.logger.Info("migrated legacy checklist",
		"path", s.path,
		"from_version", l.version,
		"items", doc.Len(),
	)
	return doc, info, nil
}

// Save writes doc in the current schema version.
func (s *Store) Save(doc *checklist.Document) error {
	data, err := encodeCurrent(doc)
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("marshal: %w", err)}
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	s.logger.Debug("saved checklist", "path", s.path, "items", doc.Len(), "checked", doc.CheckedCount())
	return nil
}

// Update runs one load-mutate-save cycle. If loading or fn fails nothing is
// written. Checked IDs that no longer name an item are dropped before the
// save.
func (s *Store) Update(fn func(doc *checklist.Document) error) (*checklist.Document, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return doc, err
	}
	doc.Prune()
	if err := s.Save(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
