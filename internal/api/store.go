package api

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wc26sim/wcdata/internal/model"
	"github.com/wc26sim/wcdata/internal/validate"
)

// Store holds the merged tournament document served by the API. The file
// is read once at startup and can be reloaded without restarting.
type Store struct {
	mu       sync.RWMutex
	path     string
	raw      []byte
	data     *model.TournamentData
	report   *validate.Result
	loadedAt time.Time
}

// NewStore creates a store for the given teams.json path. Call Load
// before serving.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the tournament file, decodes it, and runs the full
// validation battery. A document that fails any check is rejected so the
// API never serves inconsistent data.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading tournament data: %w", err)
	}

	report, err := validate.Run(raw)
	if err != nil {
		return fmt.Errorf("validating tournament data: %w", err)
	}
	if !report.Valid() {
		names := make([]string, 0, len(report.FailedChecks()))
		for _, check := range report.FailedChecks() {
			names = append(names, check.Name)
		}
		return fmt.Errorf("tournament data failed validation: %s", strings.Join(names, "; "))
	}

	data, err := model.DecodeStrict(raw)
	if err != nil {
		return fmt.Errorf("decoding tournament data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.data = data
	s.report = report
	s.loadedAt = time.Now().UTC()
	return nil
}

// Raw returns the document bytes exactly as merged to disk.
func (s *Store) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Data returns the decoded tournament document.
func (s *Store) Data() *model.TournamentData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Report returns the validation report from the last load.
func (s *Store) Report() *validate.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// LoadedAt returns when the current document was loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
