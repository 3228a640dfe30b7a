// Package catalog holds the read-only product reference data and the HTTP
// client the order service uses to resolve products against it.
package catalog

import (
	"github.com/microshop/storefront/internal/domain"
)

// Products is the demo assortment. Static for the lifetime of the process.
var Products = []domain.Product{
	{
		ID:          "p-hoodie",
		Name:        "Cloud Hoodie",
		Description: "Soft hoodie for everyday comfort.",
		PriceCents:  4999,
		ImageURL:    "https://images.unsplash.com/photo-1520975869018-5b1f25c4e6ff?auto=format&fit=crop&w=800&q=60",
	},
	{
		ID:          "p-mug",
		Name:        "Dev Mug",
		Description: "Ceramic mug for your coffee and debugging sessions.",
		PriceCents:  1799,
		ImageURL:    "https://images.unsplash.com/photo-1528756514091-dee5ecaa3278?auto=format&fit=crop&w=800&q=60",
	},
	{
		ID:          "p-notebook",
		Name:        "Sprint Notebook",
		Description: "Pocket notebook for quick sketches and ideas.",
		PriceCents:  1299,
		ImageURL:    "https://images.unsplash.com/photo-1455885666463-5c37b1b7b854?auto=format&fit=crop&w=800&q=60",
	},
}

// Service answers product lookups from an in-memory set.
type Service struct {
	byID  map[string]domain.Product
	order []string
}

func NewService(products []domain.Product) *Service {
	s := &Service{byID: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		s.byID[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

// List returns all products in their declared order.
func (s *Service) List() []domain.Product {
	out := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// GetByID returns domain.ErrNotFound for unknown ids.
func (s *Service) GetByID(id string) (domain.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}
