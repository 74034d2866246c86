// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the name of the advisory lock held by a writer in a graph
// directory.
const LockFile = ".ingest.lock"

// ErrLocked is returned when another process holds the graph directory.
var ErrLocked = errors.New("graph directory is locked by another ingest")

// LockDir takes the writer lock for dir without blocking. The caller
// must Unlock the returned lock when done.
func LockDir(dir string) (*flock.Flock, error) {
	if dir == "" {
		return nil, fmt.Errorf("graph directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating graph directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring graph lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return lock, nil
}
