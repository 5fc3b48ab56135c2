package storefront

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// DefaultCatalogTimeout bounds the product list fetch on initial load
const DefaultCatalogTimeout = 8 * time.Second

// Catalog reads the product catalog. It is consumed, not owned, by the
// storefront.
type Catalog struct {
	client  *Client
	timeout time.Duration
}

func NewCatalog(client *Client, timeout time.Duration) *Catalog {
	if timeout <= 0 {
		timeout = DefaultCatalogTimeout
	}
	return &Catalog{client: client, timeout: timeout}
}

// ListProducts fetches the catalog within the bounded wait. On any failure
// the built-in fallback catalog is returned with fromFallback set, so a
// page can still render.
func (c *Catalog) ListProducts(ctx context.Context) (products []Product, fromFallback bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.do(ctx, "list products", http.MethodGet, "/products", nil, &products); err != nil {
		c.client.log.Warn("Falling back to built-in catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackProducts(), true
	}
	if len(products) == 0 {
		return FallbackProducts(), true
	}
	return products, false
}

// GetProduct fetches one product. ErrNotFound for unknown ids.
func (c *Catalog) GetProduct(ctx context.Context, id string) (Product, error) {
	var product Product
	if err := c.client.do(ctx, "get product", http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}
