package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Read loads a Repository from path. If the file does not exist and
// create is true, a fresh empty repository is returned instead of an
// error. Any other read or decode failure is reported as
// ErrRepositoryInvalid.
func Read(path string, create bool) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && create {
			return New(), nil
		}
		return nil, &ErrRepositoryInvalid{Path: path, Reason: err.Error()}
	}

	var r Repository
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &ErrRepositoryInvalid{Path: path, Reason: err.Error()}
	}
	if r.Fragments == nil {
		r.Fragments = make(map[string]*Fragment)
	}
	if r.Tickets == nil {
		r.Tickets = make(map[uuid.UUID]*TicketFileEntry)
	}
	if len(r.Links) == 0 {
		r.Links = nil
	}
	return &r, nil
}

// Write persists r to path, overwriting any existing content. Callers
// are responsible for serializing concurrent writers; the repository
// itself does not lock.
func (r *Repository) Write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding repository: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteAtomic persists r to path via a temp-file-then-rename sequence so
// readers never observe a partially written repository. Used by the
// linker, the garbage collector, and strip.
func (r *Repository) WriteAtomic(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".repo-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp repository file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding repository: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp repository file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp repository file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp repository file into place: %w", err)
	}
	return nil
}
