package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/variations"
)

var _ variations.VariantStore = (*AdminClient)(nil)

func TestAdminClient_RequiresToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewAdminClient(srv.URL, "")
	_, err := c.ListVariants(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called, "unauthenticated calls never reach the server")
}

func TestAdminClient_ListVariants(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/admin/product-variants", r.URL.Path)
		assert.Equal(t, productID.String(), r.URL.Query().Get("productId"))

		w.Header().Set("Content-Type", "application/json")
		resp := models.VariantListResponse{
			Variants: []models.ProductVariant{
				{ID: variantID, ProductID: productID, Name: "Color", Value: "Black", PriceGhs: 50},
			},
		}
		_ = writeJSON(w, resp)
	}))
	defer srv.Close()

	c := NewAdminClient(srv.URL, "test-token")
	variants, err := c.ListVariants(context.Background(), productID)

	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, variantID, variants[0].ID)
	assert.Equal(t, "Black", variants[0].Value)
}

func TestAdminClient_SurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = writeJSON(w, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DUPLICATE_VARIANT",
				Message: "A variant already exists for this combination",
				Field:   "value",
			},
		})
	}))
	defer srv.Close()

	c := NewAdminClient(srv.URL, "test-token")
	_, err := c.CreateVariant(context.Background(), models.CreateVariantRequest{
		ProductID: uuid.New().String(),
		Name:      "Color",
		Value:     "Black",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "DUPLICATE_VARIANT", apiErr.Code)
	assert.Equal(t, "value", apiErr.Field)
}

func TestAdminClient_UpdateVariantSendsExplicitNullSalePrice(t *testing.T) {
	variantID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &fields))

		// The server keeps the sale price when the key is absent, so a
		// clear has to arrive as an explicit null
		raw, present := fields["compareAtPriceGhs"]
		require.True(t, present)
		assert.Equal(t, "null", string(raw))

		_ = writeJSON(w, models.ProductVariant{ID: variantID})
	}))
	defer srv.Close()

	price := 40.0
	c := NewAdminClient(srv.URL, "test-token")
	_, err := c.UpdateVariant(context.Background(), variantID, models.UpdateVariantRequest{PriceGhs: &price})
	require.NoError(t, err)
}

func TestAdminClient_DeleteVariant(t *testing.T) {
	variantID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/product-variants/"+variantID.String(), r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewAdminClient(srv.URL, "test-token")
	assert.NoError(t, c.DeleteVariant(context.Background(), variantID))
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}
