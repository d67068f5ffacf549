// Package jsonstore persists whole documents as JSON files. Each store owns a
// single file; every save rewrites the full document atomically via a temp
// file and rename. A missing or unreadable file loads as the zero document,
// never as an error.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store reads and writes one JSON document at a fixed path.
type Store[T any] struct {
	path string
	mu   sync.Mutex
}

// New returns a store bound to the given file path.
func New[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the file the store is bound to.
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads the document from disk. Missing and corrupt files both yield the
// zero document; the caller starts from an empty state by contract.
func (s *Store[T]) Load() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc T
	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		var zero T
		return zero
	}
	return doc
}

// Save serializes the document and replaces the file atomically.
func (s *Store[T]) Save(doc T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// Exists reports whether the backing file is present on disk.
func (s *Store[T]) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
