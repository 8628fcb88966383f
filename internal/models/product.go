package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// ProductType controls which fields are authoritative for price/stock.
// Simple products carry price/stock on the product row; variable products
// carry them per-variant and the product-level price mirrors the first
// priced variant.
type ProductType string

const (
	ProductTypeSimple   ProductType = "simple"
	ProductTypeVariable ProductType = "variable"
)

// JSON type for PostgreSQL JSONB (object/map)
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// JSONArray type for PostgreSQL JSONB (array)
type JSONArray []interface{}

func (j JSONArray) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONArray, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// ProductImage represents a product gallery image
type ProductImage struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	AltText  *string `json:"altText,omitempty"`
	Position int     `json:"position"`
}

// Product represents a storefront product
type Product struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string        `json:"name" gorm:"not null"`
	Slug        *string       `json:"slug,omitempty" gorm:"uniqueIndex"`
	SKU         *string       `json:"sku,omitempty" gorm:"index"`
	Description *string       `json:"description,omitempty"`
	ProductType ProductType   `json:"productType" gorm:"not null;default:'simple';index"`
	Status      ProductStatus `json:"status" gorm:"not null;default:'DRAFT';index"`
	// PriceGhs is always numeric on the wire, never null. For variable
	// products it mirrors the first priced variant (0 when none is priced).
	PriceGhs          float64    `json:"priceGhs" gorm:"not null;default:0"`
	CompareAtPriceGhs *float64   `json:"compareAtPriceGhs,omitempty"`
	Stock             int        `json:"stock" gorm:"not null;default:0"`
	CategoryID        *uuid.UUID `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	BrandID           *uuid.UUID `json:"brandId,omitempty" gorm:"type:uuid;index"`
	CollectionID      *uuid.UUID `json:"collectionId,omitempty" gorm:"type:uuid;index"`
	Images            *JSONArray `json:"images,omitempty" gorm:"type:jsonb"`
	Badges            *JSONArray `json:"badges,omitempty" gorm:"type:jsonb"`
	Tags              *JSONArray `json:"tags,omitempty" gorm:"type:jsonb"`
	IsFeatured        bool       `json:"isFeatured" gorm:"default:false"`
	// SEO metadata
	SeoTitle       *string           `json:"seoTitle,omitempty" gorm:"column:seo_title;type:text"`
	SeoDescription *string           `json:"seoDescription,omitempty" gorm:"column:seo_description;type:text"`
	Variants       []*ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	DeletedAt      *gorm.DeletedAt   `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy      *string           `json:"createdBy,omitempty"`
	UpdatedBy      *string           `json:"updatedBy,omitempty"`
}

// ProductVariant represents one persisted price/stock record for a specific
// attribute combination on a product. Name encodes the dimension(s)
// ("Color", "Length" or "Color / Length") and Value the term(s) joined by
// " / " in the same order; the (name, value) pair is the only link back to a
// displayed combination, so it is kept unique per product. Variants are hard
// deleted (no DeletedAt): a lingering soft-deleted row would keep holding the
// unique (product_id, name, value) slot and block the combination from ever
// being recreated.
type ProductVariant struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID         uuid.UUID `json:"productId" gorm:"type:uuid;not null;index;uniqueIndex:idx_variants_product_name_value"`
	Name              string    `json:"name" gorm:"not null;uniqueIndex:idx_variants_product_name_value"`
	Value             string    `json:"value" gorm:"not null;uniqueIndex:idx_variants_product_name_value"`
	PriceGhs          float64   `json:"priceGhs" gorm:"not null;default:0"`
	CompareAtPriceGhs *float64  `json:"compareAtPriceGhs,omitempty"`
	Stock             int       `json:"stock" gorm:"not null;default:0"`
	SKU               *string   `json:"sku,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name              string         `json:"name" binding:"required"`
	Slug              *string        `json:"slug,omitempty"`
	SKU               *string        `json:"sku,omitempty"`
	Description       *string        `json:"description,omitempty"`
	ProductType       *ProductType   `json:"productType,omitempty"`
	PriceGhs          float64        `json:"priceGhs"`
	CompareAtPriceGhs *float64       `json:"compareAtPriceGhs,omitempty"`
	Stock             *int           `json:"stock,omitempty"`
	CategoryID        *string        `json:"categoryId,omitempty"`
	BrandID           *string        `json:"brandId,omitempty"`
	CollectionID      *string        `json:"collectionId,omitempty"`
	Images            []ProductImage `json:"images,omitempty"`
	Badges            []string       `json:"badges,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	IsFeatured        *bool          `json:"isFeatured,omitempty"`
	SeoTitle          *string        `json:"seoTitle,omitempty"`
	SeoDescription    *string        `json:"seoDescription,omitempty"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string        `json:"name,omitempty"`
	Slug              *string        `json:"slug,omitempty"`
	SKU               *string        `json:"sku,omitempty"`
	Description       *string        `json:"description,omitempty"`
	ProductType       *ProductType   `json:"productType,omitempty"`
	Status            *ProductStatus `json:"status,omitempty"`
	PriceGhs          *float64       `json:"priceGhs,omitempty"`
	CompareAtPriceGhs *float64       `json:"compareAtPriceGhs,omitempty"`
	Stock             *int           `json:"stock,omitempty"`
	CategoryID        *string        `json:"categoryId,omitempty"`
	BrandID           *string        `json:"brandId,omitempty"`
	CollectionID      *string        `json:"collectionId,omitempty"`
	Images            []ProductImage `json:"images,omitempty"`
	Badges            []string       `json:"badges,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	IsFeatured        *bool          `json:"isFeatured,omitempty"`
	SeoTitle          *string        `json:"seoTitle,omitempty"`
	SeoDescription    *string        `json:"seoDescription,omitempty"`
}

// CreateVariantRequest represents a request to create a product variant
type CreateVariantRequest struct {
	ProductID         string   `json:"productId" binding:"required"`
	Name              string   `json:"name" binding:"required"`
	Value             string   `json:"value" binding:"required"`
	PriceGhs          float64  `json:"priceGhs"`
	CompareAtPriceGhs *float64 `json:"compareAtPriceGhs,omitempty"`
	Stock             int      `json:"stock"`
	SKU               *string  `json:"sku,omitempty"`
}

// UpdateVariantRequest represents a partial update to a product variant.
// CompareAtPriceGhs never carries omitempty: the server treats an absent key
// as "keep", so clearing the sale price requires marshaling an explicit null.
type UpdateVariantRequest struct {
	Name              *string  `json:"name,omitempty"`
	Value             *string  `json:"value,omitempty"`
	PriceGhs          *float64 `json:"priceGhs,omitempty"`
	CompareAtPriceGhs *float64 `json:"compareAtPriceGhs"`
	Stock             *int     `json:"stock,omitempty"`
	SKU               *string  `json:"sku,omitempty"`
}

// VariantListResponse is the wire shape of the variant list endpoint.
// Clients re-sync their whole local list from this after every mutation.
type VariantListResponse struct {
	Variants []ProductVariant `json:"variants"`
}

// SearchProductsRequest represents a product list/search request
type SearchProductsRequest struct {
	Query        *string        `json:"query,omitempty"`
	CategoryID   *string        `json:"categoryId,omitempty"`
	BrandID      *string        `json:"brandId,omitempty"`
	CollectionID *string        `json:"collectionId,omitempty"`
	Status       *ProductStatus `json:"status,omitempty"`
	ProductType  *ProductType   `json:"productType,omitempty"`
	IsFeatured   *bool          `json:"isFeatured,omitempty"`
	MinPrice     *float64       `json:"minPrice,omitempty"`
	MaxPrice     *float64       `json:"maxPrice,omitempty"`
	SortBy       *string        `json:"sortBy,omitempty"`
	SortOrder    *string        `json:"sortOrder,omitempty"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
}

// Response types
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details *JSON  `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}
