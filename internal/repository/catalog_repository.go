package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

const CategoryCacheTTL = 30 * time.Minute // Categories rarely change

// CatalogRepository persists the catalog taxonomy: categories, brands and
// curated collections.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, redis: redisClient}
}

func (r *CatalogRepository) invalidateCaches(ctx context.Context, kind string) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, fmt.Sprintf("juellehair:%s:*", kind), 100).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

// Categories

func (r *CatalogRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	cacheKey := "juellehair:categories:list"

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(val), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	if err := r.db.Order("position ASC, created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(categories)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return categories, nil
}

func (r *CatalogRepository) GetCategoryByID(categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) CreateCategory(category *models.Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.Slug == "" {
		category.Slug = generateSlug(category.Name)
	}

	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateCaches(context.Background(), "categories")
	}
	return err
}

func (r *CatalogRepository) UpdateCategory(categoryID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	err := r.db.Model(&models.Category{}).Where("id = ?", categoryID).Updates(updates).Error
	if err == nil {
		r.invalidateCaches(context.Background(), "categories")
	}
	return err
}

func (r *CatalogRepository) DeleteCategory(categoryID uuid.UUID) error {
	err := r.db.Where("id = ?", categoryID).Delete(&models.Category{}).Error
	if err == nil {
		r.invalidateCaches(context.Background(), "categories")
	}
	return err
}

// CountProductsInCategory reports how many products reference a category,
// used to refuse deleting a category that is still in use
func (r *CatalogRepository) CountProductsInCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Brands

func (r *CatalogRepository) GetBrands() ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

func (r *CatalogRepository) GetBrandByID(brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("id = ?", brandID).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *CatalogRepository) CreateBrand(brand *models.Brand) error {
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	if brand.Slug == "" {
		brand.Slug = generateSlug(brand.Name)
	}
	return r.db.Create(brand).Error
}

func (r *CatalogRepository) UpdateBrand(brandID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.Brand{}).Where("id = ?", brandID).Updates(updates).Error
}

func (r *CatalogRepository) DeleteBrand(brandID uuid.UUID) error {
	return r.db.Where("id = ?", brandID).Delete(&models.Brand{}).Error
}

// Collections

func (r *CatalogRepository) GetCollections() ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.Order("position ASC, created_at ASC").Find(&collections).Error
	return collections, err
}

func (r *CatalogRepository) GetCollectionByID(collectionID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.Where("id = ?", collectionID).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *CatalogRepository) CreateCollection(collection *models.Collection) error {
	collection.CreatedAt = time.Now()
	collection.UpdatedAt = time.Now()
	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}
	if collection.Slug == "" {
		collection.Slug = generateSlug(collection.Name)
	}
	return r.db.Create(collection).Error
}

func (r *CatalogRepository) UpdateCollection(collectionID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.Collection{}).Where("id = ?", collectionID).Updates(updates).Error
}

func (r *CatalogRepository) DeleteCollection(collectionID uuid.UUID) error {
	return r.db.Where("id = ?", collectionID).Delete(&models.Collection{}).Error
}
