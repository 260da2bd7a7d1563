// Package storage persists datasets as Parquet files at paths derived
// from the config taxonomy.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"rtpipe/internal/config"
	"rtpipe/internal/core"
	applog "rtpipe/internal/log"
)

type Store struct {
	logger *applog.Logger
}

func NewStore(logger *applog.Logger) *Store {
	return &Store{logger: logger}
}

// DomainPath is the per-domain dataset location: the domain's resolved
// output directory plus "<base>_history.parquet".
func (s *Store) DomainPath(d config.Domain) string {
	return filepath.Join(d.OutputDir, d.Base()+"_history.parquet")
}

// WriteDataset writes the dataset to path, replacing any existing file.
// Writes are not atomic; a crash mid-write can leave a partial file.
func (s *Store) WriteDataset(path string, ds core.Dataset) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := parquet.WriteFile(path, []core.ActivityRecord(ds)); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	s.logger.Debug("dataset written", applog.FieldPath, path, applog.FieldRows, len(ds))
	return nil
}

// ReadDataset loads a previously written dataset.
func (s *Store) ReadDataset(path string) (core.Dataset, error) {
	rows, err := parquet.ReadFile[core.ActivityRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return core.Dataset(rows), nil
}
