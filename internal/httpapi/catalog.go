package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/catalog"
	"github.com/microshop/storefront/internal/domain"
	"github.com/microshop/storefront/internal/observability"
)

type CatalogHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

func NewCatalogRouter(svc *catalog.Service, logger *zap.Logger, metrics observability.Metrics) http.Handler {
	h := &CatalogHandler{catalog: svc, logger: logger}

	r := baseRouter("catalog", logger, metrics)
	r.Get("/catalog/products", h.listProducts)
	r.Get("/catalog/products/{id}", h.getProduct)
	return r
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"products": h.catalog.List()})
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.catalog.GetByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, domain.CodeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}
