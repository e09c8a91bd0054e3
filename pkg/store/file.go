package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps every key in one YAML document. Values are stored as native
// YAML so the file stays editable by hand.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]any
}

// OpenFileStore loads path, treating a missing file as empty.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("file path is empty"))
	}
	s := &FileStore{path: path, values: make(map[string]any)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errors.Join(ErrReadFailed, err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Join(ErrReadFailed, fmt.Errorf("parse %s: %w", path, err))
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return s, nil
}

func (s *FileStore) Read(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false, errors.Join(ErrReadFailed, err)
	}
	return data, true, nil
}

func (s *FileStore) Write(_ context.Context, key string, value []byte) error {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		v = string(value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = v
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".modkit-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
