// internal/catalog/client_test.go
package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshoplabs/storefront-backend/internal/catalog"
	"github.com/eshoplabs/storefront-backend/internal/config"
)

func newClient(t *testing.T, handler http.HandlerFunc) *catalog.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return catalog.NewClient(config.CatalogConfig{
		BaseURL:        server.URL,
		FetchLimit:     100,
		RequestTimeout: 5,
	})
}

func TestFetchProductsDecodesListAndSendsLimit(t *testing.T) {
	var gotLimit string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "Essence Mascara", "price": 9.99, "discountPercentage": 20, "stock": 99, "meta": {"createdAt": "2024-05-23T08:56:21.618Z"}}
			],
			"total": 1, "skip": 0, "limit": 100
		}`))
	})

	products, err := client.FetchProducts(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, "100", gotLimit)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Essence Mascara", products[0].Title)
	assert.Equal(t, 9.99, products[0].Price)
	assert.Equal(t, 2024, products[0].Meta.CreatedAt.Year())
}

func TestFetchProductByID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 7, "title": "Casual Shirt", "price": 19.99, "stock": 50}`))
	})

	product, err := client.FetchProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, 50, product.Stock)
}

func TestFetchProductNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchProduct(context.Background(), 9999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestFetchProductsServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchProducts(context.Background(), 100)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, catalog.ErrNotFound)
}

func TestFetchProductsMalformedBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [`))
	})

	_, err := client.FetchProducts(context.Background(), 100)
	assert.Error(t, err)
}
