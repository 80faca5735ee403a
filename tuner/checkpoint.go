package tuner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CheckpointVersion is the current checkpoint format version.
const CheckpointVersion = "1.0"

// Checkpoint is the serializable state of a search, written after every
// evaluation.
type Checkpoint struct {
	Evaluations []Evaluation `json:"evaluations"`
	Best        *Evaluation  `json:"best,omitempty"`
	Seed        int64        `json:"seed"`
	Timestamp   time.Time    `json:"timestamp"`
	Version     string       `json:"version"`
}

// Save writes the checkpoint atomically: temp file first, then rename.
func (cp *Checkpoint) Save(path string) error {
	cp.Timestamp = time.Now()
	cp.Version = CheckpointVersion

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create checkpoint directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint file. A missing file returns nil with
// no error, meaning a fresh search.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	cp := &Checkpoint{}
	if err := json.Unmarshal(data, cp); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	return cp, nil
}
