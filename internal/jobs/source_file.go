package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads raw job records from a JSON file on disk. The file holds
// either a bare array of records or an object with a "jobs" array.
type FileSource struct {
	id   string
	path string
}

func NewFileSource(id, path string) *FileSource {
	return &FileSource{id: id, path: path}
}

func (s *FileSource) ID() string { return s.id }

func (s *FileSource) Fetch(_ context.Context) ([]Raw, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var entries []any
	if err := json.Unmarshal(data, &entries); err != nil {
		var wrapper struct {
			Jobs []any `json:"jobs"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.path, err)
		}
		entries = wrapper.Jobs
	}

	records := make([]Raw, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			// Not a mapping. Passed through as nil so the aggregator
			// counts it as malformed instead of losing it silently.
			records = append(records, nil)
			continue
		}
		records = append(records, Raw(m))
	}

	return records, nil
}
