package provider

import (
	"context"
	"sync"

	"order-reconciler/feature/orders/models"

	"github.com/google/uuid"
)

// SimulatedClient is an in-memory provider. Every call succeeds, created
// orders start as ordered and get a random UUID as external id.
type SimulatedClient struct {
	mu     sync.RWMutex
	orders map[string]*RemoteOrder
	ids    []string
}

// NewSimulatedClient returns an empty simulated provider.
func NewSimulatedClient() *SimulatedClient {
	return &SimulatedClient{orders: make(map[string]*RemoteOrder)}
}

func (s *SimulatedClient) CreateOrder(_ context.Context, order *models.Order) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[id] = &RemoteOrder{ID: id, Type: order.Type, Status: models.StatusOrdered}
	s.ids = append(s.ids, id)
	return id, nil
}

func (s *SimulatedClient) FetchOrder(_ context.Context, externalID string) (*RemoteOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[externalID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

// DeleteOrder always reports success, even for unknown ids.
func (s *SimulatedClient) DeleteOrder(_ context.Context, externalID string) (bool, error) {
	s.Remove(externalID)
	return true, nil
}

func (s *SimulatedClient) ListOrders(context.Context) ([]RemoteOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RemoteOrder, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, *s.orders[id])
	}
	return out, nil
}

// Lookup returns a copy of a stored order and reports whether it exists.
func (s *SimulatedClient) Lookup(externalID string) (RemoteOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[externalID]
	if !ok {
		return RemoteOrder{}, false
	}
	return *o, true
}

// Put inserts or replaces a remote order.
func (s *SimulatedClient) Put(order RemoteOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		s.ids = append(s.ids, order.ID)
	}
	cp := order
	s.orders[order.ID] = &cp
}

// SetStatus changes the status of a known order and reports whether it exists.
func (s *SimulatedClient) SetStatus(externalID string, status models.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[externalID]
	if !ok {
		return false
	}
	o.Status = status
	return true
}

// Remove deletes an order and reports whether it existed.
func (s *SimulatedClient) Remove(externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[externalID]; !ok {
		return false
	}
	delete(s.orders, externalID)
	for i, id := range s.ids {
		if id == externalID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}
