package accounts

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Store caches the account table from a JSON file. Every lookup checks the
// file's modification time and reloads the whole table when it changed; the
// replacement is a single swap of the map reference, so a duplicate reload
// from a second goroutine is wasted work but never corrupts state.
type Store struct {
	path string

	mu    sync.Mutex
	mtime time.Time
	table map[string]Record

	validate *validator.Validate
}

func NewStore(path string) *Store {
	return &Store{path: path, validate: validator.New()}
}

// Load returns the current account table. A missing backing file yields an
// empty table, which locks everyone out rather than crashing the server.
func (s *Store) Load() (map[string]Record, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return map[string]Record{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if info.ModTime().Equal(s.mtime) && s.table != nil {
		return s.table, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var table map[string]Record
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	for username, rec := range table {
		if err := s.validate.Struct(rec); err != nil {
			// Malformed records are unusable for login anyway; drop them
			// so verification fails closed instead of panicking later.
			delete(table, username)
		}
	}
	s.table = table
	s.mtime = info.ModTime()
	return s.table, nil
}

// Lookup returns the record for username, if present.
func (s *Store) Lookup(username string) (Record, bool, error) {
	table, err := s.Load()
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := table[username]
	return rec, ok, nil
}
