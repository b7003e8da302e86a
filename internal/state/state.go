package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"DBWidget/internal/model"
)

// Snapshot is the on-disk form of the last result event.
type Snapshot struct {
	Kind      model.EventKind   `json:"kind"`
	Data      *model.ResultData `json:"data,omitempty"`
	LastError string            `json:"last_error,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// LoadState reads the snapshot from a JSON file. Returns an empty snapshot if the file doesn't exist.
func LoadState(filePath string) (*Snapshot, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveState writes the snapshot to a JSON file, creating the parent directory.
func SaveState(filePath string, snap *Snapshot) error {
	snap.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
