package product

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("listing not found")
)

type Repository interface {
	List(userID int) ([]Listing, error)
	Get(userID int, id string) (Listing, error)
	// Upsert inserts the listing or replaces the stored copy with the same key.
	Upsert(l Listing) error
	Delete(userID int, id string) error
}

type listingKey struct {
	userID int
	id     string
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// running without a database.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage map[listingKey]Listing
}

func NewInMemoryRepository(seed []Listing) *InMemoryRepository {
	r := &InMemoryRepository{storage: make(map[listingKey]Listing, len(seed))}
	for _, l := range seed {
		r.storage[listingKey{l.UserID, l.ID}] = l
	}
	return r
}

func (r *InMemoryRepository) List(userID int) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Listing, 0)
	for k, l := range r.storage {
		if k.userID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Get(userID int, id string) (Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.storage[listingKey{userID, id}]
	if !ok {
		return Listing{}, ErrNotFound
	}
	return l, nil
}

func (r *InMemoryRepository) Upsert(l Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.storage[listingKey{l.UserID, l.ID}] = l
	return nil
}

func (r *InMemoryRepository) Delete(userID int, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := listingKey{userID, id}
	if _, ok := r.storage[k]; !ok {
		return ErrNotFound
	}
	delete(r.storage, k)
	return nil
}
