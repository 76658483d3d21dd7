package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

const (
	DriverSQLite = "sqlite"
	DriverYAML   = "yaml"
)

// Repository persists the whole ordered task list.
type Repository interface {
	ListTasks(ctx context.Context) ([]Task, error)
	// ReplaceTasks overwrites every stored row with tasks, in order.
	ReplaceTasks(ctx context.Context, tasks []Task) error
	Close() error
}

// Open returns a ready repository for driver at path, creating parent
// directories and applying migrations as needed.
func Open(driver, path string) (Repository, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: empty path")
	}
	if err := ensureDir(trimmed); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "":
		repo, err := OpenSQLite(trimmed)
		if err != nil {
			return nil, err
		}
		if err := MigrateUp(repo.db); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	case DriverYAML:
		return NewYAMLRepository(trimmed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
