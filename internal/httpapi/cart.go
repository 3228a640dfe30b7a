package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/cart"
	"github.com/microshop/storefront/internal/domain"
	"github.com/microshop/storefront/internal/observability"
)

type CartHandler struct {
	store  *cart.Store
	logger *zap.Logger
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func NewCartRouter(store *cart.Store, logger *zap.Logger, metrics observability.Metrics) http.Handler {
	h := &CartHandler{store: store, logger: logger}

	r := baseRouter("cart", logger, metrics)
	r.Get("/cart/{userId}", h.getCart)
	r.Post("/cart/{userId}/items", h.addItem)
	r.Delete("/cart/{userId}/items/{productId}", h.removeItem)
	r.Delete("/cart/{userId}", h.clearCart)
	return r
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	writeJSON(w, http.StatusOK, map[string]any{"cart": h.store.Get(userID)})
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidInput)
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidInput)
		return
	}

	updated, err := h.store.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidInput)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": updated})
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	productID := chi.URLParam(r, "productId")
	updated := h.store.RemoveItem(userID, productID)
	writeJSON(w, http.StatusOK, map[string]any{"cart": updated})
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	h.store.Clear(userID)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
