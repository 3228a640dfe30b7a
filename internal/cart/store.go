// Package cart implements the per-user pending item accumulator. The store
// is an explicit dependency rather than a package-level map so each test
// (and each process) gets an isolated instance.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/microshop/storefront/internal/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Store keeps carts in memory. An RWMutex guards the map because the HTTP
// server handles requests concurrently; every mutation is a single step
// under the lock.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*domain.Cart),
		now:   time.Now,
	}
}

// get-or-insert contract: a cart materializes on first touch.
func (s *Store) getOrCreateLocked(userID string) *domain.Cart {
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c := &domain.Cart{
		UserID:    userID,
		Items:     []domain.CartItem{},
		UpdatedAt: s.now().UTC(),
	}
	s.carts[userID] = c
	return c
}

// Get returns the user's cart, creating an empty one on first read.
func (s *Store) Get(userID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.getOrCreateLocked(userID))
}

// AddItem merges into an existing line by summing quantity, or appends a
// new line.
func (s *Store) AddItem(userID, productID string, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)
	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}
	c.UpdatedAt = s.now().UTC()
	return snapshot(c), nil
}

// RemoveItem drops the whole line for productID. Removing an absent line is
// not an error.
func (s *Store) RemoveItem(userID, productID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(userID)
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	c.UpdatedAt = s.now().UTC()
	return snapshot(c)
}

// Clear forgets the user's cart entirely.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// snapshot copies the cart so callers never hold a reference into the map.
func snapshot(c *domain.Cart) domain.Cart {
	out := *c
	out.Items = make([]domain.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
