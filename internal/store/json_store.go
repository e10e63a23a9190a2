package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lazyvibe/failbell/internal/model"
)

// HistoryFileName is the file the JSON store writes to.
const HistoryFileName = "history.json"

// DefaultMaxRecords caps the number of stored alerts.
const DefaultMaxRecords = 200

var (
	// ErrNotFound is returned when an alert is not found.
	ErrNotFound = errors.New("not found")
)

// data represents the JSON file structure.
type data struct {
	Alerts []model.AlertRecord `json:"alerts"`
}

// JSONStore implements AlertStore using JSON file persistence.
type JSONStore struct {
	mu   sync.RWMutex
	path string
	max  int
	data *data
}

// NewJSONStore opens the history file in configDir, creating the directory
// if needed.
func NewJSONStore(configDir string) (*JSONStore, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	s := &JSONStore{
		path: filepath.Join(configDir, HistoryFileName),
		max:  DefaultMaxRecords,
		data: &data{Alerts: []model.AlertRecord{}},
	}
	if _, err := os.Stat(s.path); err == nil {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the history file path.
func (s *JSONStore) Path() string {
	return s.path
}

// SetMaxRecords changes the cap. Values < 1 are ignored.
func (s *JSONStore) SetMaxRecords(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.max = n
}

// load reads data from the JSON file.
func (s *JSONStore) load() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil
	}
	if err := json.Unmarshal(content, s.data); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return nil
}

// save writes data atomically via a temp file.
func (s *JSONStore) save() error {
	content, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Close is a no-op; every write is persisted immediately.
func (s *JSONStore) Close() error {
	return nil
}

// Record appends rec and persists the history.
func (s *JSONStore) Record(_ context.Context, rec *model.AlertRecord) error {
	if rec == nil {
		return errors.New("nil alert record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Alerts = append(s.data.Alerts, *rec)
	if over := len(s.data.Alerts) - s.max; over > 0 {
		s.data.Alerts = append([]model.AlertRecord(nil), s.data.Alerts[over:]...)
	}
	return s.save()
}

// List returns alerts sorted by FiredAt descending.
func (s *JSONStore) List(_ context.Context, limit int) ([]model.AlertRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.AlertRecord, len(s.data.Alerts))
	copy(result, s.data.Alerts)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].FiredAt > result[j].FiredAt
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Get retrieves an alert by ID or unique ID prefix.
func (s *JSONStore) Get(_ context.Context, id string) (*model.AlertRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *model.AlertRecord
	for i := range s.data.Alerts {
		a := s.data.Alerts[i]
		if a.ID == id {
			return &a, nil
		}
		if id != "" && strings.HasPrefix(a.ID, id) {
			if found != nil {
				return nil, fmt.Errorf("ambiguous alert id %q", id)
			}
			found = &a
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Clear removes all alerts.
func (s *JSONStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Alerts = []model.AlertRecord{}
	return s.save()
}
