package postgres

import "context"

// EnsureSchema creates the order tables when they do not exist yet. Demo
// deployments run it on startup instead of carrying a migration tool.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			total_cents BIGINT NOT NULL,
			status      TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_items (
			order_id    TEXT NOT NULL REFERENCES orders(id),
			pos         INT NOT NULL,
			product_id  TEXT NOT NULL,
			name        TEXT NOT NULL,
			price_cents BIGINT NOT NULL,
			quantity    INT NOT NULL,
			PRIMARY KEY (order_id, pos)
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user_created
			ON orders (user_id, created_at DESC);
	`)
	return err
}
