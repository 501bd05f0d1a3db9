package repository

import (
	"sync"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/google/uuid"
)

// EventType identifies the kind of mutation a listener is told about
type EventType string

const (
	EventItemAdded   EventType = "item_added"
	EventItemRemoved EventType = "item_removed"
)

// Event describes a committed change to the menu.
// Version increases by one per mutation; Total is the item count right after it.
type Event struct {
	Type    EventType       `json:"type"`
	Item    models.MenuItem `json:"item"`
	Total   int             `json:"total"`
	Version uint64          `json:"version"`
}

// Listener is invoked synchronously after every committed mutation
type Listener func(Event)

// MenuStore defines the read/mutate surface over the user's menu
type MenuStore interface {
	AddItem(payload models.NewItem) models.MenuItem
	AddItemIfAbsent(payload models.NewItem) (models.MenuItem, bool)
	RemoveItem(id string) bool
	GetAllItems() []models.MenuItem
	GetItemsByCourse(course models.Course) []models.MenuItem
	GetTotalItems() int
	CountByCourse() map[models.Course]int
	IsItemPresent(name string) bool
	Subscribe(listener Listener) (unsubscribe func())
}

const (
	nameFilterCapacity = 1024
	nameFilterFPRate   = 0.01
)

// InMemoryMenuStore implements MenuStore with an insertion-ordered slice
type InMemoryMenuStore struct {
	mu      sync.RWMutex
	items   []models.MenuItem
	ids     map[string]struct{}
	retired map[string]struct{}
	names   *bloom.BloomFilter
	version uint64

	listenersMu sync.RWMutex
	listeners   map[uint64]Listener
	nextSubID   uint64

	newID func() string
}

// StoreOption configures an InMemoryMenuStore
type StoreOption func(*InMemoryMenuStore)

// WithIDGenerator replaces the default UUID generator
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *InMemoryMenuStore) {
		s.newID = gen
	}
}

// NewInMemoryMenuStore creates an empty menu store
func NewInMemoryMenuStore(opts ...StoreOption) *InMemoryMenuStore {
	s := &InMemoryMenuStore{
		items:     make([]models.MenuItem, 0),
		ids:       make(map[string]struct{}),
		retired:   make(map[string]struct{}),
		names:     bloom.NewWithEstimates(nameFilterCapacity, nameFilterFPRate),
		listeners: make(map[uint64]Listener),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem assigns a fresh id to payload, appends it and notifies listeners.
// The payload is stored as given: field validation belongs to the caller,
// so a zero price or empty text is accepted rather than coerced.
func (s *InMemoryMenuStore) AddItem(payload models.NewItem) models.MenuItem {
	s.mu.Lock()
	ev := s.insert(payload)
	s.mu.Unlock()

	s.notify(ev)
	return ev.Item
}

// AddItemIfAbsent adds payload only when no item already has its name.
// The check and the insert happen under one lock.
func (s *InMemoryMenuStore) AddItemIfAbsent(payload models.NewItem) (models.MenuItem, bool) {
	s.mu.Lock()
	if s.hasName(payload.Name) {
		s.mu.Unlock()
		return models.MenuItem{}, false
	}
	ev := s.insert(payload)
	s.mu.Unlock()

	s.notify(ev)
	return ev.Item, true
}

// insert must be called with mu held
func (s *InMemoryMenuStore) insert(payload models.NewItem) Event {
	id := s.newID()
	for s.issued(id) {
		id = s.newID()
	}

	item := models.MenuItem{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Course:      payload.Course,
		Price:       payload.Price,
	}
	s.items = append(s.items, item)
	s.ids[id] = struct{}{}
	s.names.AddString(item.Name)
	s.version++
	return Event{Type: EventItemAdded, Item: item, Total: len(s.items), Version: s.version}
}

// RemoveItem deletes the item with the given id, reporting whether one was removed
func (s *InMemoryMenuStore) RemoveItem(id string) bool {
	s.mu.Lock()
	if _, ok := s.ids[id]; !ok {
		s.mu.Unlock()
		return false
	}

	var removed models.MenuItem
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			removed = item
			continue
		}
		kept = append(kept, item)
	}
	// zero the tail so the dropped item is not retained by the backing array
	s.items[len(kept)] = models.MenuItem{}
	s.items = kept
	delete(s.ids, id)
	s.retired[id] = struct{}{}
	s.rebuildNames()
	s.version++
	ev := Event{Type: EventItemRemoved, Item: removed, Total: len(s.items), Version: s.version}
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// GetAllItems returns a copy of every item in insertion order
func (s *InMemoryMenuStore) GetAllItems() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.MenuItem, len(s.items))
	copy(items, s.items)
	return items
}

// GetItemsByCourse returns the items of one course, in insertion order
func (s *InMemoryMenuStore) GetItemsByCourse(course models.Course) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.MenuItem, 0)
	for _, item := range s.items {
		if item.Course == course {
			items = append(items, item)
		}
	}
	return items
}

// GetTotalItems returns the number of items in the menu
func (s *InMemoryMenuStore) GetTotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// CountByCourse returns the item count for each fixed course, zeros included
func (s *InMemoryMenuStore) CountByCourse() map[models.Course]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Course]int, len(models.Courses()))
	for _, c := range models.Courses() {
		counts[c] = 0
	}
	for _, item := range s.items {
		counts[item.Course]++
	}
	return counts
}

// IsItemPresent reports whether some item has exactly this name
func (s *InMemoryMenuStore) IsItemPresent(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasName(name)
}

// hasName must be called with mu held
func (s *InMemoryMenuStore) hasName(name string) bool {
	if !s.names.TestString(name) {
		return false
	}
	for _, item := range s.items {
		if item.Name == name {
			return true
		}
	}
	return false
}

// Subscribe registers listener for change events.
// The returned function removes it and is safe to call more than once.
func (s *InMemoryMenuStore) Subscribe(listener Listener) func() {
	s.listenersMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners[id] = listener
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// notify runs with no store lock held so listeners may read or mutate the store
func (s *InMemoryMenuStore) notify(ev Event) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

// issued reports whether id belongs to a current or removed item; mu must be held
func (s *InMemoryMenuStore) issued(id string) bool {
	if _, ok := s.ids[id]; ok {
		return true
	}
	_, ok := s.retired[id]
	return ok
}

// rebuildNames must be called with mu held
func (s *InMemoryMenuStore) rebuildNames() {
	s.names.ClearAll()
	for _, item := range s.items {
		s.names.AddString(item.Name)
	}
}
