// internal/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eshoplabs/storefront-backend/internal/config"
	"github.com/eshoplabs/storefront-backend/internal/models"
)

// ErrNotFound is returned when the upstream catalog has no product with the
// requested id.
var ErrNotFound = errors.New("product not found")

// Client fetches products from the upstream catalog API. Requests are
// single-shot: no retries, no caching. Failures are returned to the caller,
// which surfaces them with a manual retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	}
}

// FetchProducts retrieves up to limit products from the upstream catalog.
func (c *Client) FetchProducts(ctx context.Context, limit int) ([]models.Product, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, limit)

	var list models.ProductList
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"count": len(list.Products),
		"limit": limit,
	}).Debug("Fetched product list from catalog")

	return list.Products, nil
}

// FetchProduct retrieves a single product by id. Returns ErrNotFound when the
// upstream answers 404.
func (c *Client) FetchProduct(ctx context.Context, id int) (*models.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	var product models.Product
	if err := c.getJSON(ctx, url, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
