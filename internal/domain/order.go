package domain

import "time"

// Product is reference data owned by the catalog service. Read-only for
// everyone else.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	ImageURL    string `json:"imageUrl"`
}

// CartItem is a single pending line in a user's cart.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the per-user pending items. Created lazily on first touch.
type Cart struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// OrderLine is the raw submission unit: what the client asks for, before
// the catalog has priced it.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderItem is the persisted snapshot of a line: name and price are copied
// from the catalog at placement time so later catalog edits never rewrite
// history.
type OrderItem struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order is an immutable, priced record of a completed submission.
// TotalCents always equals the sum of PriceCents*Quantity over Items.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Items      []OrderItem `json:"items"`
	TotalCents int64       `json:"totalCents"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}
