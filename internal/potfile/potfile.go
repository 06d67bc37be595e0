// Package potfile keeps digests cracked by earlier runs so later runs can
// skip them.
package potfile

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/buntdb"

	"edu/dictcrack/internal/cracker"
)

type Store struct {
	mu sync.RWMutex
	db *buntdb.DB
}

// Open opens or creates the potfile at path. ":memory:" keeps it in memory.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open potfile %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func key(algo, hash string) string {
	return strings.ToLower(algo) + ":" + strings.ToLower(hash)
}

// Lookup returns the known words for the given digests of algo.
func (s *Store) Lookup(algo string, hashes []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string)
	err := s.db.View(func(tx *buntdb.Tx) error {
		for _, h := range hashes {
			v, err := tx.Get(key(algo, h))
			if errors.Is(err, buntdb.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out[h] = v
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("potfile lookup: %w", err)
	}
	return out, nil
}

// Save records every crack under algo and returns how many were new.
func (s *Store) Save(algo string, cracks []cracker.Crack) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	err := s.db.Update(func(tx *buntdb.Tx) error {
		for _, c := range cracks {
			_, replaced, err := tx.Set(key(algo, c.Hash), c.Word, nil)
			if err != nil {
				return err
			}
			if !replaced { added++ }
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("potfile save: %w", err)
	}
	return added, nil
}

// Len counts the stored entries.
func (s *Store) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
