package connection

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("no active upstream account connection")

type Repository interface {
	Get(userID int) (Connection, error)
	Save(conn Connection) (Connection, error)
	Delete(userID int) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	conns map[int]Connection
}

func NewInMemoryRepository(seed []Connection) *InMemoryRepository {
	repo := &InMemoryRepository{conns: make(map[int]Connection, len(seed))}
	for _, c := range seed {
		repo.conns[c.UserID] = c
	}
	return repo
}

func (r *InMemoryRepository) Get(userID int) (Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conns[userID]
	if !ok {
		return Connection{}, ErrNotFound
	}
	return c, nil
}

func (r *InMemoryRepository) Save(conn Connection) (Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[conn.UserID] = conn
	return conn, nil
}

func (r *InMemoryRepository) Delete(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[userID]; !ok {
		return ErrNotFound
	}
	delete(r.conns, userID)
	return nil
}
