package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SavedScenario describes one stored scenario file.
type SavedScenario struct {
	ID      string                 `json:"id"`
	SavedAt time.Time              `json:"saved_at"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Store persists ad hoc scenario payloads as JSON files, one file per save.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the payload to <dir>/<uuid>.json and returns the stored
// record. The payload is stored verbatim so a saved scenario round-trips
// exactly.
func (s *Store) Save(payload map[string]interface{}) (*SavedScenario, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scenario directory: %w", err)
	}
	saved := &SavedScenario{
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC().Truncate(time.Second),
		Payload: payload,
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	path := filepath.Join(s.dir, saved.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write scenario file: %w", err)
	}
	return saved, nil
}

// List returns the stored scenarios sorted by save time, newest first. A
// missing directory is treated as an empty store. Files that are not
// scenario JSON are skipped.
func (s *Store) List() ([]*SavedScenario, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []*SavedScenario{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}

	out := make([]*SavedScenario, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		saved, err := s.load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, saved)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

// Get loads a stored scenario by id. The id must parse as a UUID; anything
// else is rejected before it reaches the filesystem, so a crafted id cannot
// name a path outside the store directory.
func (s *Store) Get(id string) (*SavedScenario, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid scenario id %q", id)
	}
	return s.load(id)
}

func (s *Store) load(id string) (*SavedScenario, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		return nil, err
	}
	var saved SavedScenario
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	if saved.ID == "" {
		saved.ID = id
	}
	return &saved, nil
}
