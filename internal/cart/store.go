// Package cart holds the per-customer shopping cart: an ordered list of
// lines keyed by product id, persisted as one JSON blob after every
// mutation so a cart survives restarts.
package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lustrahome/shop/internal/models"
	"github.com/lustrahome/shop/internal/storage"
)

// Line is one product-quantity pairing. Name, price and image are snapshots
// taken when the product was added; later catalog edits do not touch them.
type Line struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

type Store struct {
	mu    sync.Mutex
	key   string
	blobs storage.BlobStore
	lines []Line
	log   *slog.Logger
}

// NewStore hydrates the store from its blob key. A missing key or a blob
// that no longer decodes yields an empty cart, never an error.
func NewStore(blobs storage.BlobStore, key string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{key: key, blobs: blobs, log: log}

	data, err := blobs.Get(key)
	if err != nil {
		return s
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Warn("cart: discarding malformed snapshot", "key", key, "error", err)
		return s
	}
	s.lines = lines
	return s
}

// persist writes the full line list under the store's key. Failures are
// logged only: the in-memory mutation has already happened and the caller
// does not wait on durability.
func (s *Store) persist() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.log.Error("cart: marshal failed", "key", s.key, "error", err)
		return
	}
	if err := s.blobs.Put(s.key, data); err != nil {
		s.log.Error("cart: persist failed", "key", s.key, "error", err)
	}
}

func (s *Store) find(productID int) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of the product into the cart. An existing line for the
// same product id gains quantity instead of duplicating.
func (s *Store) Add(p models.Product) Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(p.ID); i >= 0 {
		s.lines[i].Quantity++
		s.persist()
		return s.lines[i]
	}

	line := Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	}
	s.lines = append(s.lines, line)
	s.persist()
	return line
}

// SetQuantity sets the line's quantity, removing the line when quantity
// drops to zero or below. Absent product ids are a no-op.
func (s *Store) SetQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	} else {
		s.lines[i].Quantity = quantity
	}
	s.persist()
}

// Remove deletes the line for the product id; no-op if absent.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persist()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist()
}

// Lines returns a copy of the current line list in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of all line quantities, computed on read.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of price x quantity over all lines, in kopecks.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, l := range s.lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// Manager hands out one Store per customer, hydrating each at first use.
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
	return fmt.Sprintf("cart:%d", userID)
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
