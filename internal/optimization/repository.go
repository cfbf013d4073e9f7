package optimization

import (
	"sort"
	"sync"
)

type Repository interface {
	Create(s Suggestion) (Suggestion, error)
	// ListByListing returns the history of a listing, newest first.
	ListByListing(userID int, listingID string) ([]Suggestion, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Suggestion
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(s Suggestion) (Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.storage = append(r.storage, s)
	return s, nil
}

func (r *InMemoryRepository) ListByListing(userID int, listingID string) ([]Suggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Suggestion, 0)
	for _, s := range r.storage {
		if s.UserID == userID && s.ListingID == listingID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
