package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/domain"
	"github.com/microshop/storefront/internal/observability"
)

// OrderService is what the order routes need from the core service.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, lines []domain.OrderLine) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type OrderHandler struct {
	service OrderService
	logger  *zap.Logger
}

type placeOrderRequest struct {
	UserID string             `json:"userId"`
	Items  []domain.OrderLine `json:"items"`
}

func NewOrderRouter(svc OrderService, logger *zap.Logger, metrics observability.Metrics) http.Handler {
	h := &OrderHandler{service: svc, logger: logger}

	r := baseRouter("order", logger, metrics)
	r.Post("/order", h.placeOrder)
	r.Get("/order/{userId}", h.listOrders)
	return r
}

func (h *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidInput)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req.UserID, req.Items)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// writeOrderError maps the error taxonomy onto the route contract:
// validation → 400 with the specific code, both upstream failures → 502
// with the single dependency code, everything else (store failures
// included) → 500.
func (h *OrderHandler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Code)
		return
	}
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrCatalogUnavailable) {
		h.logger.Warn("placement failed on catalog dependency", zap.Error(err))
		writeError(w, http.StatusBadGateway, domain.CodeUpstreamError)
		return
	}

	h.logger.Error("order request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, domain.CodeStoreError)
}
