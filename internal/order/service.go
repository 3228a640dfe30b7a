// Package order implements the core placement workflow: validate the
// submission, enrich each line with authoritative name/price from the
// catalog, total it, and durably record the result.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/domain"
	"github.com/microshop/storefront/internal/observability"
)

//go:generate mockgen -source internal/order/service.go -destination=internal/order/resolver_mock_test.go -package=order

// ProductResolver is the catalog capability the service depends on.
// catalog.Client implements it in production; tests supply canned products.
type ProductResolver interface {
	Resolve(ctx context.Context, productID string) (domain.Product, error)
}

// Store is the durable order collection. Append must complete before
// PlaceOrder returns; the caller never observes "placed but not durable".
type Store interface {
	Append(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Publisher emits an event after an order is durably recorded. Best-effort:
// a publish failure is logged, never surfaced to the caller.
type Publisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order)
}

type Service struct {
	resolver  ProductResolver
	store     Store
	publisher Publisher
	logger    *zap.Logger
	metrics   observability.Metrics
	newID     func() string
	now       func() time.Time
}

func NewService(resolver ProductResolver, store Store, publisher Publisher, logger *zap.Logger, metrics observability.Metrics) *Service {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Service{
		resolver:  resolver,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		newID:     newOrderID,
		now:       time.Now,
	}
}

// newOrderID returns a short random identifier, prefixed so the entity type
// is visible in logs and on disk.
func newOrderID() string {
	return "o_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// PlaceOrder validates lines, resolves every product, snapshots name/price
// into order items in submission order, totals them and appends the order to
// the store. Any resolve failure aborts the whole placement with no write.
func (s *Service) PlaceOrder(ctx context.Context, userID string, lines []domain.OrderLine) (*domain.Order, error) {
	if err := validate(userID, lines); err != nil {
		return nil, err
	}

	start := s.now()

	// Sequential, in request order. Two lines for the same product stay two
	// separate items.
	items := make([]domain.OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		product, err := s.resolver.Resolve(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   line.Quantity,
		})
		total += product.PriceCents * int64(line.Quantity)
	}

	order := &domain.Order{
		ID:         s.newID(),
		UserID:     userID,
		Items:      items,
		TotalCents: total,
		Status:     domain.StatusPlaced,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.store.Append(ctx, order); err != nil {
		s.logger.Error("order append failed",
			zap.String("order_id", order.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	durMs := float64(time.Since(start).Microseconds()) / 1000.0
	s.metrics.ObservePlacement(len(order.Items), order.TotalCents, durMs)
	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(order.Items)),
		zap.Int64("total_cents", order.TotalCents),
	)

	if s.publisher != nil {
		s.publisher.OrderPlaced(ctx, order)
	}

	return order, nil
}

// ListOrders returns the user's orders in store order (newest first).
func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.store.ListByUser(ctx, userID)
}

// validate rejects malformed submissions before any network or disk I/O.
// Missing/empty body pieces are INVALID_INPUT; a bad line is INVALID_ITEMS.
func validate(userID string, lines []domain.OrderLine) error {
	if strings.TrimSpace(userID) == "" {
		return &domain.ValidationError{Code: domain.CodeInvalidInput, Reason: "userId is required"}
	}
	if len(lines) == 0 {
		return &domain.ValidationError{Code: domain.CodeInvalidInput, Reason: "items must not be empty"}
	}
	for _, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return &domain.ValidationError{Code: domain.CodeInvalidItems, Reason: "productId is required"}
		}
		if line.Quantity <= 0 {
			return &domain.ValidationError{Code: domain.CodeInvalidItems, Reason: "quantity must be positive"}
		}
	}
	return nil
}
