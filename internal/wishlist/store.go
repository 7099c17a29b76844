// Package wishlist holds an observable, ordered set of liked product
// references backed by a key-value storage.
package wishlist

import (
	"encoding/json"
	"errors"
	"sync"
)

// StorageKey is the key under which the list is persisted.
const StorageKey = "wishlist"

// ErrNoValue is returned by Storage.Get when the key holds nothing.
var ErrNoValue = errors.New("wishlist: no stored value")

// Storage is the durable key-value space a Store persists into. Any other
// error from Get marks the storage unavailable for the Store's lifetime.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Listener receives the list after every effective mutation.
type Listener func(items []string)

// Store is an ordered set of references. Mutations are serialized. Listeners
// run after the lock is released, on the mutating goroutine, one delivery at
// a time; a snapshot older than one already delivered is dropped. Listeners
// must not mutate the store.
type Store struct {
	mu         sync.Mutex
	storage    Storage
	loaded     bool
	persistent bool
	items      []string
	version    uint64

	listeners map[int]Listener
	nextID    int

	notifyMu  sync.Mutex
	delivered uint64
}

// New returns a Store over storage. A nil storage keeps the list in memory.
func New(storage Storage) *Store {
	return &Store{storage: storage, listeners: map[int]Listener{}}
}

// Items returns a copy of the current list, loading it on first access.
func (s *Store) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.snapshotLocked()
}

// Contains reports membership of ref in the current list.
func (s *Store) Contains(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.indexLocked(ref) >= 0
}

// Persistent reports whether mutations currently reach storage.
func (s *Store) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.persistent
}

// Add appends ref if absent. It reports whether the list changed.
func (s *Store) Add(ref string) bool {
	return s.mutate(func() bool {
		if s.indexLocked(ref) >= 0 {
			return false
		}
		s.items = append(s.items, ref)
		return true
	})
}

// Remove drops ref if present. It reports whether the list changed.
func (s *Store) Remove(ref string) bool {
	return s.mutate(func() bool {
		i := s.indexLocked(ref)
		if i < 0 {
			return false
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	})
}

// Toggle removes ref if present, else adds it. It returns the membership
// after the call.
func (s *Store) Toggle(ref string) bool {
	var member bool
	s.mutate(func() bool {
		if i := s.indexLocked(ref); i >= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			member = false
			return true
		}
		s.items = append(s.items, ref)
		member = true
		return true
	})
	return member
}

// Clear empties the list. It reports whether the list changed.
func (s *Store) Clear() bool {
	return s.mutate(func() bool {
		if len(s.items) == 0 {
			return false
		}
		s.items = nil
		return true
	})
}

// Subscribe registers fn and returns a function that unregisters it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered listeners.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Store) mutate(fn func() bool) bool {
	s.mu.Lock()
	s.loadLocked()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	s.persistLocked()
	s.version++
	v := s.version
	snap := s.snapshotLocked()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if v <= s.delivered {
		return true
	}
	s.delivered = v
	for _, l := range ls {
		l(snap)
	}
	return true
}

func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.items = nil
	if s.storage == nil {
		return
	}
	raw, err := s.storage.Get(StorageKey)
	switch {
	case errors.Is(err, ErrNoValue):
		s.persistent = true
		return
	case err != nil:
		return
	}
	s.persistent = true
	items, ok := decode(raw)
	if !ok {
		// Corrupt value: discard it and start empty.
		if err := s.storage.Delete(StorageKey); err != nil {
			s.persistent = false
		}
		return
	}
	s.items = items
}

func (s *Store) persistLocked() {
	if !s.persistent {
		return
	}
	b, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		return
	}
	if err := s.storage.Set(StorageKey, b); err != nil {
		s.persistent = false
	}
}

func (s *Store) snapshotLocked() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexLocked(ref string) int {
	for i, it := range s.items {
		if it == ref {
			return i
		}
	}
	return -1
}

// decode accepts only a JSON array of strings. Duplicates from older writers
// are collapsed, keeping first occurrence.
func decode(raw []byte) ([]string, bool) {
	var vals []any
	if err := json.Unmarshal(raw, &vals); err != nil || vals == nil {
		return nil, false
	}
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, true
}
