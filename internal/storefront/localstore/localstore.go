package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists string values by key in a single JSON file, playing the
// role the browser's localStorage plays for the web storefront. A missing
// or unreadable file behaves as an empty store.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the store file under the user's config directory,
// falling back to the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shopeasy.json"
	}
	return filepath.Join(dir, "shopeasy", "store.json")
}

func (s *Store) Get(key string) (string, bool) {
	values := s.read()
	v, ok := values[key]
	return v, ok
}

func (s *Store) Set(key, value string) error {
	const op = "localstore.Set"

	values := s.read()
	values[key] = value

	if err := s.write(values); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	const op = "localstore.Delete"

	values := s.read()
	delete(values, key)

	if err := s.write(values); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// read never fails: a missing or corrupt file is an empty store.
func (s *Store) read() map[string]string {
	values := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return make(map[string]string)
	}
	return values
}

func (s *Store) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
