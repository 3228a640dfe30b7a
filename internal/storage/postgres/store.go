// Package postgres is the production-grade order store: each placement is a
// single transactional insert, so concurrent writers cannot lose updates
// the way the flat-file collection can.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/microshop/storefront/internal/domain"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Append inserts the order header and its items in one transaction.
func (s *Store) Append(ctx context.Context, o *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_cents, status, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, o.ID, o.UserID, o.TotalCents, string(o.Status), o.CreatedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for pos, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, pos, product_id, name, price_cents, quantity)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, o.ID, pos, it.ProductID, it.Name, it.PriceCents, it.Quantity)
	}
	if br := tx.SendBatch(ctx, batch); br != nil {
		if err := br.Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListByUser returns the user's orders newest first, items in submission
// order.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, total_cents, status, created_at
		FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// GetByID is used by health probes and ad-hoc lookups.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	var status string
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, total_cents, status, created_at
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.UserID, &o.TotalCents, &status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)

	items, err := s.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) itemsFor(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT product_id, name, price_cents, quantity
		FROM order_items
		WHERE order_id=$1
		ORDER BY pos
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.PriceCents, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
