// Package pricing implements the PriceSource collaborator as an HTTP client
// for the upstream price API, with an optional Redis read-through cache.
//
// The API contract: GET <base>/<productName>.json → {"price": <decimal>}.
// 404 maps to PriceNotFoundError, 400 to PriceRequestError; any other
// non-200 status, transport fault, or malformed body wraps ErrPriceUnavailable.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	pkgcache "github.com/ghuser/cartengine/pkg/cache"
	"github.com/ghuser/cartengine/pkg/logger"
	"github.com/ghuser/cartengine/services/cart/domain"
)

// priceResponse is the upstream response body.
type priceResponse struct {
	Price decimal.Decimal `json:"price"`
}

// Client fetches unit prices over HTTP. When a cache is configured, lookups
// are served from Redis first and cache writes happen off the request path;
// cache failures never fail a lookup.
type Client struct {
	baseURL string
	httpc   *http.Client
	cache   *pkgcache.PriceCache // nil disables caching
	log     logger.Logger
}

// NewClient returns a price API Client. The HTTP transport is instrumented
// with OTel so upstream calls appear as child spans of the request trace.
// Pass a nil priceCache to disable caching.
func NewClient(baseURL string, timeout time.Duration, priceCache *pkgcache.PriceCache, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache: priceCache,
		log:   log,
	}
}

// GetPrice resolves the unit price for productName.
func (c *Client) GetPrice(ctx context.Context, productName string) (decimal.Decimal, error) {
	if c.cache != nil {
		if price, err := c.cache.Get(ctx, productName); err == nil {
			return price, nil
		} else if err != redis.Nil {
			c.log.WarnContext(ctx, "price cache read failed, falling back to API",
				"product", productName, "error", err)
		}
	}

	price, err := c.fetch(ctx, productName)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if c.cache != nil {
		go func() {
			warmCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := c.cache.Set(warmCtx, productName, price); err != nil {
				c.log.Warn("price cache write failed", "product", productName, "error", err)
			}
		}()
	}

	return price, nil
}

func (c *Client) fetch(ctx context.Context, productName string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/%s.json", c.baseURL, productName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: build request: %w", domain.ErrPriceUnavailable, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", domain.ErrPriceUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		var body priceResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: malformed response body: %w", domain.ErrPriceUnavailable, err)
		}
		return body.Price, nil
	case http.StatusNotFound:
		c.log.WarnContext(ctx, "product not found upstream", "product", productName)
		return decimal.Decimal{}, &domain.PriceNotFoundError{Product: productName, Status: resp.StatusCode}
	case http.StatusBadRequest:
		c.log.WarnContext(ctx, "price request rejected upstream", "product", productName)
		return decimal.Decimal{}, &domain.PriceRequestError{Product: productName, Status: resp.StatusCode}
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unexpected status %d", domain.ErrPriceUnavailable, resp.StatusCode)
	}
}

// Ping probes upstream reachability for the health endpoint. Any HTTP
// response counts as reachable; only transport faults are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("price api ping: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("price api ping: %w", err)
	}
	return resp.Body.Close()
}
