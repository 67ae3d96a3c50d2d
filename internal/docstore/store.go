package docstore

import (
	"errors"
	"fmt"
	"sort"
)

// Collection names used by the session engine.
const (
	Users  = "users"
	Movies = "movies"
)

// ErrNoCollection is returned when a required collection does not exist.
var ErrNoCollection = errors.New("collection does not exist")

// Store is a set of named collections.
//
// A Store is not safe for concurrent use. The engine owns exactly one Store
// per simulated session and accesses it from a single goroutine.
type Store struct {
	collections map[string]*Collection
}

// New creates an empty store.
func New() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

// CreateCollection creates (or resets) an empty collection with the given name.
// Returns false if the name is empty.
func (s *Store) CreateCollection(name string) bool {
	if name == "" {
		return false
	}
	s.collections[name] = &Collection{}
	return true
}

// Collection returns the named collection, or nil if it does not exist.
func (s *Store) Collection(name string) *Collection {
	return s.collections[name]
}

// MustCollection returns the named collection or an error wrapping
// ErrNoCollection.
func (s *Store) MustCollection(name string) (*Collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoCollection, name)
	}
	return c, nil
}

// DropCollection removes a collection. Returns false if it was not present.
func (s *Store) DropCollection(name string) bool {
	if _, ok := s.collections[name]; !ok {
		return false
	}
	delete(s.collections, name)
	return true
}

// DropAll removes every collection.
func (s *Store) DropAll() {
	clear(s.collections)
}

// Names returns the collection names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
