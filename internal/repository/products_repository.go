package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute // Single product cache
	ProductListCacheTTL = 2 * time.Minute // Product list cache (shorter due to frequent changes)
	VariantListCacheTTL = 2 * time.Minute // Variant lists are re-fetched after every mutation
)

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductsRepository(db *gorm.DB, redisClient *redis.Client) *ProductsRepository {
	return &ProductsRepository{
		db:    db,
		redis: redisClient,
	}
}

func productCacheKey(productID uuid.UUID, includeVariants bool) string {
	return fmt.Sprintf("juellehair:product:%s:%v", productID.String(), includeVariants)
}

func variantListCacheKey(productID uuid.UUID) string {
	return fmt.Sprintf("juellehair:variants:%s", productID.String())
}

// invalidateProductCaches drops cached copies of a product and its variant
// list. Variant mutations go through here too since the product's headline
// price mirrors its variants.
func (r *ProductsRepository) invalidateProductCaches(ctx context.Context, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx,
		productCacheKey(productID, true),
		productCacheKey(productID, false),
		variantListCacheKey(productID),
	)
	r.invalidateProductListCaches(ctx)
}

func (r *ProductsRepository) invalidateProductListCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, "juellehair:products:list:*", 100).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

// Product CRUD Operations

// CreateProduct creates a new product
func (r *ProductsRepository) CreateProduct(product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	// Ensure product has an ID before generating slug (for uniqueness)
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	// Generate slug from name if not provided or empty
	if product.Slug == nil || *product.Slug == "" {
		baseSlug := generateSlug(product.Name)
		uniqueSlug := fmt.Sprintf("%s-%s", baseSlug, product.ID.String()[:8])
		product.Slug = &uniqueSlug
	}

	err := r.db.Create(product).Error
	if err == nil {
		r.invalidateProductListCaches(context.Background())
	}
	return err
}

// GetProductByID retrieves a product by ID with caching
func (r *ProductsRepository) GetProductByID(productID uuid.UUID, includeVariants bool) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := productCacheKey(productID, includeVariants)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	query := r.db.Where("id = ?", productID)
	if includeVariants {
		query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}
	if err := query.First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(product)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// GetProductBySlug retrieves a product by its slug for storefront pages
func (r *ProductsRepository) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ?", slug).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a product and invalidates cache
func (r *ProductsRepository) UpdateProduct(productID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	err := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(updates).Error

	if err == nil {
		r.invalidateProductCaches(context.Background(), productID)
	}
	return err
}

// UpdateProductPrice writes the derived headline price of a variable product
func (r *ProductsRepository) UpdateProductPrice(productID uuid.UUID, priceGhs float64) error {
	return r.UpdateProduct(productID, map[string]interface{}{"price_ghs": priceGhs})
}

// DeleteProduct soft deletes a product
func (r *ProductsRepository) DeleteProduct(productID uuid.UUID) error {
	err := r.db.Where("id = ?", productID).Delete(&models.Product{}).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), productID)
	}
	return err
}

// GetProducts retrieves products with filters and pagination
func (r *ProductsRepository) GetProducts(req *models.SearchProductsRequest) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})
	query = r.applyProductFilters(query, req)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if req.SortBy != nil && *req.SortBy != "" {
		sortOrder := "DESC"
		if req.SortOrder != nil && strings.ToUpper(*req.SortOrder) == "ASC" {
			sortOrder = "ASC"
		}
		query = query.Order(fmt.Sprintf("%s %s", *req.SortBy, sortOrder))
	} else {
		query = query.Order("created_at DESC")
	}

	query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Variant Operations
//
// The reconciliation flow depends on two contracts here: a variant list is
// always returned in creation order (the first variant defines the headline
// price), and every mutation invalidates the cached list so the follow-up
// re-fetch observes the write.

// GetProductVariants lists a product's variants in creation order
func (r *ProductsRepository) GetProductVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	cacheKey := variantListCacheKey(productID)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var variants []models.ProductVariant
			if err := json.Unmarshal([]byte(val), &variants); err == nil {
				return variants, nil
			}
		}
	}

	var variants []models.ProductVariant
	err := r.db.Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(variants)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, VariantListCacheTTL)
		}
	}

	return variants, nil
}

// GetVariantByID retrieves a single variant
func (r *ProductsRepository) GetVariantByID(variantID uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := r.db.Where("id = ?", variantID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVariant creates a variant record. The unique index on
// (product_id, name, value) rejects a second record for the same combination.
func (r *ProductsRepository) CreateVariant(variant *models.ProductVariant) error {
	variant.CreatedAt = time.Now()
	variant.UpdatedAt = time.Now()
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}

	err := r.db.Create(variant).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), variant.ProductID)
	}
	return err
}

// UpdateVariant applies a partial update to a variant
func (r *ProductsRepository) UpdateVariant(variantID uuid.UUID, updates map[string]interface{}) (*models.ProductVariant, error) {
	updates["updated_at"] = time.Now()

	var v models.ProductVariant
	if err := r.db.Where("id = ?", variantID).First(&v).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&v).Updates(updates).Error; err != nil {
		return nil, err
	}

	r.invalidateProductCaches(context.Background(), v.ProductID)
	return &v, nil
}

// DeleteVariant removes the variant row outright. The delete must be a hard
// delete: the unique (product_id, name, value) index spans all rows, so a
// soft-deleted leftover would block the same combination from being saved
// again.
func (r *ProductsRepository) DeleteVariant(variantID uuid.UUID) error {
	var v models.ProductVariant
	if err := r.db.Where("id = ?", variantID).First(&v).Error; err != nil {
		return err
	}

	err := r.db.Unscoped().Delete(&v).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), v.ProductID)
	}
	return err
}

// IsDuplicateKeyError reports whether the error is the unique-index violation
// raised when a second variant is written for the same (name, value) pair
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}

func (r *ProductsRepository) applyProductFilters(query *gorm.DB, req *models.SearchProductsRequest) *gorm.DB {
	if req.Query != nil && *req.Query != "" {
		term := "%" + strings.TrimSpace(*req.Query) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?", term, term, term)
	}

	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}

	if req.BrandID != nil {
		query = query.Where("brand_id = ?", *req.BrandID)
	}

	if req.CollectionID != nil {
		query = query.Where("collection_id = ?", *req.CollectionID)
	}

	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}

	if req.ProductType != nil {
		query = query.Where("product_type = ?", *req.ProductType)
	}

	if req.IsFeatured != nil {
		query = query.Where("is_featured = ?", *req.IsFeatured)
	}

	if req.MinPrice != nil {
		query = query.Where("price_ghs >= ?", *req.MinPrice)
	}

	if req.MaxPrice != nil {
		query = query.Where("price_ghs <= ?", *req.MaxPrice)
	}

	return query
}

// generateSlug creates a URL-friendly slug from a name
func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
