package progress

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/domain"
)

// Encode serializes the full project map as one JSON object keyed by
// project ID.
func Encode(states map[string]domain.ProjectProgress) (string, error) {
	data, err := json.Marshal(states)
	if err != nil {
		return "", fmt.Errorf("encoding progress: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted document and normalizes every entry.
func Decode(doc string) (map[string]domain.ProjectProgress, error) {
	var states map[string]domain.ProjectProgress
	if err := json.Unmarshal([]byte(doc), &states); err != nil {
		return nil, fmt.Errorf("decoding progress: %w", err)
	}
	if states == nil {
		states = make(map[string]domain.ProjectProgress)
	}
	for id, s := range states {
		s.Normalize()
		states[id] = s
	}
	return states, nil
}
