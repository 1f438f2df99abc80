package cart

import (
	"context"
	"sync"

	"domainhost/internal/domain"
)

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]domain.Order)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[sessionID]
	if !ok {
		return nil, domain.ErrNoActiveCart
	}
	return &order, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[sessionID] = *order
	return nil
}

func (s *MemoryStore) UpdateOptions(_ context.Context, sessionID string, patch OptionsPatch) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[sessionID]
	if !ok {
		return nil, domain.ErrNoActiveCart
	}
	if err := mergeOptions(&order, patch); err != nil {
		return nil, err
	}
	s.orders[sessionID] = order
	return &order, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, sessionID)
	return nil
}
