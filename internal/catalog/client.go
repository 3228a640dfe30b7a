package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/domain"
	"github.com/microshop/storefront/internal/observability"
	"github.com/microshop/storefront/internal/pkg/retry"
)

// Client resolves products over the catalog's HTTP API. Because the catalog
// set is static for the process lifetime, resolved products are held in an
// LRU cache and never invalidated.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	cache       *lru.Cache[string, domain.Product]
	retryPolicy retry.Policy
	logger      *zap.Logger
	metrics     observability.Metrics
}

type productEnvelope struct {
	Product domain.Product `json:"product"`
}

func NewClient(baseURL string, cacheCap int, retryPolicy retry.Policy, timeout time.Duration, logger *zap.Logger, metrics observability.Metrics) (*Client, error) {
	if cacheCap <= 0 {
		cacheCap = 1
	}
	cache, err := lru.New[string, domain.Product](cacheCap)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		cache:       cache,
		retryPolicy: retryPolicy,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Resolve returns the product for id, from cache when possible.
// A catalog 404 maps to domain.ErrProductNotFound and is never retried;
// transport errors and non-404 statuses are retried per policy and map to
// domain.ErrCatalogUnavailable.
func (c *Client) Resolve(ctx context.Context, id string) (domain.Product, error) {
	if p, ok := c.cache.Get(id); ok {
		c.metrics.IncCacheHit()
		return p, nil
	}
	c.metrics.IncCacheMiss()

	start := time.Now()
	var product domain.Product
	err := retry.Do(ctx, c.retryPolicy, func() error {
		p, err := c.fetch(ctx, id)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	durMs := float64(time.Since(start).Microseconds()) / 1000.0
	c.metrics.ObserveResolve(id, durMs, err == nil)

	if err != nil {
		c.logger.Warn("catalog resolve failed",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return domain.Product{}, err
	}

	c.cache.Add(id, product)
	return product, nil
}

func (c *Client) fetch(ctx context.Context, id string) (domain.Product, error) {
	u := fmt.Sprintf("%s/catalog/products/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Product{}, &retry.Permanent{Err: fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var env productEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return domain.Product{}, fmt.Errorf("%w: bad response body: %v", domain.ErrCatalogUnavailable, err)
		}
		return env.Product, nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.Product{}, &retry.Permanent{Err: fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)}
	default:
		return domain.Product{}, fmt.Errorf("%w: catalog answered %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}
}
