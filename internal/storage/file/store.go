// Package file persists the order collection as one human-readable JSON
// document, rewritten wholesale on every placement. Safe across restarts,
// not safe across concurrent writers (single-writer is an accepted
// assumption of the demo design).
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/domain"
)

type Store struct {
	path   string
	logger *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the full collection. An absent file and a blank file are both
// an empty collection (first run); anything unparseable is a
// CorruptStoreError, never silently an empty list.
func (s *Store) Load(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, &domain.CorruptStoreError{Path: s.path, Err: err}
	}
	if strings.TrimSpace(string(raw)) == "" {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		s.logger.Error("order store is unreadable",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil, &domain.CorruptStoreError{Path: s.path, Err: err}
	}
	return orders, nil
}

// Save rewrites the whole collection: ensure the directory exists, write a
// temp file next to the target, then rename over it so a crash mid-write
// cannot truncate the previous contents.
func (s *Store) Save(ctx context.Context, orders []domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	raw, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// Append loads the full collection, prepends the order (newest first) and
// saves it back. A load or save failure means no durable change.
func (s *Store) Append(ctx context.Context, order *domain.Order) error {
	orders, err := s.Load(ctx)
	if err != nil {
		return err
	}
	orders = append([]domain.Order{*order}, orders...)
	return s.Save(ctx, orders)
}

// ListByUser loads the full collection and keeps store order (newest first).
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
