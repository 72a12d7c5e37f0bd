// Package favorites persists the customer's favorite product ids with the
// same blob-per-store pattern the cart uses.
package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lustrahome/shop/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	key   string
	blobs storage.BlobStore
	ids   []int
	log   *slog.Logger
}

func NewStore(blobs storage.BlobStore, key string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{key: key, blobs: blobs, log: log}

	data, err := blobs.Get(key)
	if err != nil {
		return s
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Warn("favorites: discarding malformed snapshot", "key", key, "error", err)
		return s
	}
	s.ids = ids
	return s
}

func (s *Store) persist() {
	data, err := json.Marshal(s.ids)
	if err != nil {
		s.log.Error("favorites: marshal failed", "key", s.key, "error", err)
		return
	}
	if err := s.blobs.Put(s.key, data); err != nil {
		s.log.Error("favorites: persist failed", "key", s.key, "error", err)
	}
}

func (s *Store) index(id int) int {
	for i, v := range s.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Toggle flips the favorite state for a product id and reports whether the
// id is a favorite afterwards.
func (s *Store) Toggle(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i >= 0 {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		s.persist()
		return false
	}
	s.ids = append(s.ids, id)
	s.persist()
	return true
}

func (s *Store) Has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(id) >= 0
}

func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

type Manager struct {
	mu     sync.Mutex
	blobs  storage.BlobStore
	log    *slog.Logger
	stores map[uint]*Store
}

func NewManager(blobs storage.BlobStore, log *slog.Logger) *Manager {
	return &Manager{
		blobs:  blobs,
		log:    log,
		stores: make(map[uint]*Store),
	}
}

func Key(userID uint) string {
	return fmt.Sprintf("favorites:%d", userID)
}

func (m *Manager) ForUser(userID uint) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(m.blobs, Key(userID), m.log)
	m.stores[userID] = s
	return s
}
