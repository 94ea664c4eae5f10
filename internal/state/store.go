package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store persists snapshots to a file; .yaml/.yml paths are written as YAML, anything else as JSON
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store backed by path
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file path
func (st *Store) Path() string {
	return st.path
}

// Load reads the snapshot. A missing file is not an error: it returns nil, nil.
func (st *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			st.logger.Debug("No saved calendar state", zap.String("file", st.path))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap Snapshot
	if st.isYAML() {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	st.logger.Info("Calendar state loaded",
		zap.String("file", st.path),
		zap.String("settled_month", snap.SettledMonth),
		zap.Int("selected_days", len(snap.Selection)))

	return &snap, nil
}

// Save writes snap, creating parent directories as needed
func (st *Store) Save(snap Snapshot) error {
	snap.SavedAt = time.Now().Format(time.RFC3339)

	var (
		data []byte
		err  error
	)
	if st.isYAML() {
		data, err = yaml.Marshal(&snap)
	} else {
		data, err = json.MarshalIndent(&snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if dir := filepath.Dir(st.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	if err := os.WriteFile(st.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	st.logger.Info("Calendar state saved",
		zap.String("file", st.path),
		zap.String("settled_month", snap.SettledMonth))

	return nil
}

func (st *Store) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(st.path))
	return ext == ".yaml" || ext == ".yml"
}
