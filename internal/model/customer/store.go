package customer

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrCustomerExists   = errors.New("customer already exists")
	ErrCustomerNotFound = errors.New("customer not found")
)

// Store exposes customer persistence for HTTP handlers.
type Store interface {
	List(ctx context.Context) ([]Customer, error)
	Filter(ctx context.Context, q Criteria) ([]Customer, error)
	Insert(ctx context.Context, c Customer) error
	Update(ctx context.Context, c Customer) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore implements Store with a mutex guarded map. Values handed out
// are copies, so callers cannot mutate stored records.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Customer
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a MemoryStore preloaded with the supplied customers.
// When ids repeat, the first occurrence wins.
func NewMemoryStore(items []Customer) *MemoryStore {
	s := &MemoryStore{items: make(map[string]Customer, len(items))}
	for _, item := range items {
		if _, ok := s.items[item.ID]; ok {
			continue
		}
		s.items[item.ID] = item
	}
	return s
}

// List returns every stored customer ordered by id.
func (s *MemoryStore) List(_ context.Context) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(), nil
}

// Filter scans the store and returns the customers matching q.
func (s *MemoryStore) Filter(_ context.Context, q Criteria) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Apply(q, s.snapshot()), nil
}

// Insert adds c unless its id is already taken.
func (s *MemoryStore) Insert(_ context.Context, c Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[c.ID]; ok {
		return ErrCustomerExists
	}
	s.items[c.ID] = c
	return nil
}

// Update overwrites name and national id of an existing customer.
func (s *MemoryStore) Update(_ context.Context, c Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[c.ID]
	if !ok {
		return ErrCustomerNotFound
	}
	current.Name = c.Name
	current.NationalID = c.NationalID
	s.items[c.ID] = current
	return nil
}

// Delete removes the customer with the given id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrCustomerNotFound
	}
	delete(s.items, id)
	return nil
}

// snapshot must be called with the lock held.
func (s *MemoryStore) snapshot() []Customer {
	out := make([]Customer, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
