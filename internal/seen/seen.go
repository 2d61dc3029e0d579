// Package seen tracks identifiers of items that have already been
// forwarded, backed by an append-only plain-text file with one
// identifier per line.
package seen

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Store is a file-backed set of dispatched item identifiers. The
// in-memory set is authoritative for the current run: Record updates
// it before attempting the durable write, so a failed write never
// causes a duplicate dispatch within the run.
type Store struct {
	path string
	ids  map[string]struct{}
}

// Open creates a store for the given file path. No I/O happens until
// Load or Record.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("seen file path is required")
	}
	return &Store{path: path, ids: make(map[string]struct{})}, nil
}

// Load reads the durable record into memory and returns the number of
// identifiers loaded. A missing file is not an error. On a read
// failure the store stays usable with whatever was read so far; the
// error is returned so the caller can log it and continue.
func (s *Store) Load() (int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("open seen file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return len(s.ids), fmt.Errorf("read seen file: %w", err)
	}

	return len(s.ids), nil
}

// Contains reports whether id has already been dispatched.
func (s *Store) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of identifiers currently tracked.
func (s *Store) Len() int {
	return len(s.ids)
}

// Record marks id as dispatched. The in-memory set is updated first;
// a durable-write failure is returned for logging but does not undo
// the in-memory addition, trading a possible re-send on the next run
// for no duplicates within this one. The file is opened and closed
// per call so an interrupted process loses at most the in-flight id.
func (s *Store) Record(id string) error {
	s.ids[id] = struct{}{}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open seen file for append: %w", err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append seen id: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close seen file: %w", err)
	}
	return nil
}
