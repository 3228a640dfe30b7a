package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/cart"
	"github.com/microshop/storefront/internal/domain"
)

func decodeCart(t *testing.T, body []byte) domain.Cart {
	t.Helper()
	var env struct {
		Cart domain.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Cart
}

func TestCartRoutes(t *testing.T) {
	router := NewCartRouter(cart.NewStore(), zap.NewNop(), nil)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// First read materializes an empty cart.
	w := do(http.MethodGet, "/cart/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	c := decodeCart(t, w.Body.Bytes())
	require.Equal(t, "u1", c.UserID)
	require.Empty(t, c.Items)

	// Adding the same product twice merges by summing.
	w = do(http.MethodPost, "/cart/u1/items", `{"productId":"p1","quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(http.MethodPost, "/cart/u1/items", `{"productId":"p1","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	c = decodeCart(t, w.Body.Bytes())
	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Quantity)

	w = do(http.MethodPost, "/cart/u1/items", `{"productId":"p2","quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Whole-line removal.
	w = do(http.MethodDelete, "/cart/u1/items/p1", "")
	require.Equal(t, http.StatusOK, w.Code)
	c = decodeCart(t, w.Body.Bytes())
	require.Len(t, c.Items, 1)
	require.Equal(t, "p2", c.Items[0].ProductID)

	// Clear.
	w = do(http.MethodDelete, "/cart/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(http.MethodGet, "/cart/u1", "")
	require.Empty(t, decodeCart(t, w.Body.Bytes()).Items)
}

func TestAddItemRoute_InvalidInput(t *testing.T) {
	router := NewCartRouter(cart.NewStore(), zap.NewNop(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"productId":`},
		{"missing product id", `{"quantity":1}`},
		{"zero quantity", `{"productId":"p1","quantity":0}`},
		{"negative quantity", `{"productId":"p1","quantity":-2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/cart/u1/items", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, domain.CodeInvalidInput, body.Error)
		})
	}
}
