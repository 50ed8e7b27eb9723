// Package cart implements the order cart: an ordered collection of priced
// line items with durable persistence behind a port and synchronous
// change notification.
package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Item is a priced cart line item. Identity is the generated ID, not the
// configuration: two items with identical fields are distinct entries.
type Item struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Name            string    `json:"name"`
	SizeInches      float64   `json:"size_inches,omitempty"`
	Size            string    `json:"size,omitempty"`
	MaterialID      string    `json:"material_id,omitempty"`
	MaterialName    string    `json:"material_name,omitempty"`
	CuttingID       string    `json:"cutting_id,omitempty"`
	CuttingName     string    `json:"cutting_name,omitempty"`
	Quantity        int       `json:"quantity"`
	Notes           string    `json:"notes,omitempty"`
	UnitPriceCents  int       `json:"unit_price_cents"`
	TotalPriceCents int       `json:"total_price_cents"`
	FileURL         string    `json:"file_url,omitempty"`
	FileKey         string    `json:"file_key,omitempty"`
	FileName        string    `json:"file_name,omitempty"`
	AddedAt         time.Time `json:"added_at"`
}

// Port is the persistence boundary for cart state. Implementations must
// return an empty slice, not an error, when nothing has been saved yet.
type Port interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Listener receives the full item snapshot after every mutation.
type Listener func(items []Item)

// Store holds cart state in memory and writes through to its Port after
// every mutation. In-memory state stays authoritative when persistence
// fails; the failure is only logged.
type Store struct {
	mu        sync.Mutex
	port      Port
	log       *zap.SugaredLogger
	items     []Item
	listeners map[int]Listener
	nextSub   int
}

// NewStore builds a Store initialized from the port. A load failure
// starts the cart empty.
func NewStore(port Port, log *zap.SugaredLogger) *Store {
	s := &Store{
		port:      port,
		log:       log,
		listeners: make(map[int]Listener),
	}
	items, err := port.Load()
	if err != nil {
		log.Errorw("failed to load cart, starting empty", "error", err)
		items = nil
	}
	s.items = items
	return s
}

// Add assigns the item an id and timestamp, appends it, persists, and
// notifies subscribers. The stored item is returned.
func (s *Store) Add(item Item) Item {
	s.mu.Lock()
	item.ID = uuid.NewString()
	item.AddedAt = time.Now()
	s.items = append(s.items, item)
	s.persistLocked()
	snapshot, listeners := s.observersLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
	return item
}

// Remove deletes the item with the given id. Removing an absent id is a
// no-op, but still persists and notifies like any other mutation.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistLocked()
	snapshot, listeners := s.observersLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
}

// Clear removes all items.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	snapshot, listeners := s.observersLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
}

// Items returns a snapshot copy in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalCents sums the total price of all line items.
func (s *Store) TotalCents() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.TotalPriceCents
	}
	return total
}

// Count returns the number of line items, not the sum of quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers a listener. It is invoked once immediately with the
// current state, then synchronously after every mutation. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) snapshotLocked() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persistLocked() {
	if err := s.port.Save(s.snapshotLocked()); err != nil {
		s.log.Errorw("failed to save cart", "error", err, "items", len(s.items))
	}
}

// observersLocked copies the current state and listener set so listeners
// can be invoked after the lock is released. Listeners may call back
// into the store, so they must never run under s.mu.
func (s *Store) observersLocked() ([]Item, []Listener) {
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return s.snapshotLocked(), listeners
}

func notify(snapshot []Item, listeners []Listener) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
