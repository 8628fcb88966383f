// Package clients provides typed HTTP clients for the store's admin API.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

// ErrNotAuthenticated is returned when no bearer token is set. Calls fail
// locally instead of burning a request that the server will reject anyway.
var ErrNotAuthenticated = errors.New("admin client is not authenticated")

// APIError carries the server's error envelope verbatim so callers see the
// same code/message the dashboard would
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%d): %s [field: %s]", e.Code, e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// AdminClient is a typed client for the admin REST API. It satisfies the
// reconciler's VariantStore contract, so tooling (seeders, migrations) can
// drive the variation flow against a live server.
type AdminClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAdminClient creates a client for the given base URL
func NewAdminClient(baseURL, token string) *AdminClient {
	return &AdminClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Admin endpoints are not built for bulk traffic; pace clients at
		// 10 rps with small bursts
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// SetToken replaces the bearer token
func (c *AdminClient) SetToken(token string) {
	c.token = token
}

func (c *AdminClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.token == "" {
		return ErrNotAuthenticated
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: "UNKNOWN", Message: resp.Status}

	data, err := io.ReadAll(resp.Body)
	if err == nil {
		var envelope models.ErrorResponse
		if json.Unmarshal(data, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
			apiErr.Field = envelope.Error.Field
		}
	}
	return apiErr
}

// Attributes

// ListAttributes fetches all attributes with their terms
func (c *AdminClient) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	var resp models.AttributeListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/attributes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateAttribute creates an attribute with initial terms
func (c *AdminClient) CreateAttribute(ctx context.Context, req models.CreateAttributeRequest) (*models.Attribute, error) {
	var resp models.AttributeResponse
	if err := c.do(ctx, http.MethodPost, "/admin/attributes", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Products

// CreateProduct creates a product
func (c *AdminClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var resp models.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/admin/products", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateProduct applies a partial update
func (c *AdminClient) UpdateProduct(ctx context.Context, productID uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	var resp models.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+productID.String(), req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetProduct fetches a product with variants
func (c *AdminClient) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var resp models.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/admin/products/"+productID.String(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Variants. These four methods satisfy the reconciler's store contract.

// ListVariants fetches a product's variant list in creation order
func (c *AdminClient) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	var resp models.VariantListResponse
	path := "/admin/product-variants?" + url.Values{"productId": {productID.String()}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Variants, nil
}

// CreateVariant creates a variant record
func (c *AdminClient) CreateVariant(ctx context.Context, req models.CreateVariantRequest) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := c.do(ctx, http.MethodPost, "/admin/product-variants", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVariant applies a partial update to a variant
func (c *AdminClient) UpdateVariant(ctx context.Context, variantID uuid.UUID, req models.UpdateVariantRequest) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := c.do(ctx, http.MethodPut, "/admin/product-variants/"+variantID.String(), req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVariant removes a variant record
func (c *AdminClient) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/product-variants/"+variantID.String(), nil, nil)
}

// Catalog

// CreateCategory creates a product category
func (c *AdminClient) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	var resp models.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/admin/categories", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateBrand creates a brand
func (c *AdminClient) CreateBrand(ctx context.Context, req models.CreateBrandRequest) (*models.Brand, error) {
	var resp struct {
		Success bool          `json:"success"`
		Data    *models.Brand `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/brands", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateCollection creates a curated collection
func (c *AdminClient) CreateCollection(ctx context.Context, req models.CreateCollectionRequest) (*models.Collection, error) {
	var resp struct {
		Success bool               `json:"success"`
		Data    *models.Collection `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/collections", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Content

// CreateBanner creates a storefront banner
func (c *AdminClient) CreateBanner(ctx context.Context, req models.CreateBannerRequest) (*models.Banner, error) {
	var resp struct {
		Success bool           `json:"success"`
		Data    *models.Banner `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/banners", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateBlogPost creates a blog post, optionally publishing it immediately
func (c *AdminClient) CreateBlogPost(ctx context.Context, req models.CreateBlogPostRequest) (*models.BlogPost, error) {
	var resp struct {
		Success bool             `json:"success"`
		Data    *models.BlogPost `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/blog", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateBadgeTemplate creates a reusable product badge
func (c *AdminClient) CreateBadgeTemplate(ctx context.Context, req models.CreateBadgeTemplateRequest) (*models.BadgeTemplate, error) {
	var resp struct {
		Success bool                  `json:"success"`
		Data    *models.BadgeTemplate `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/badge-templates", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Shipping zones

// CreateShippingZone creates a delivery zone
func (c *AdminClient) CreateShippingZone(ctx context.Context, req models.CreateShippingZoneRequest) (*models.ShippingZone, error) {
	var resp struct {
		Success bool                 `json:"success"`
		Data    *models.ShippingZone `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/shipping-zones", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
