package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

const (
	// Attributes change rarely outside catalog maintenance sessions
	AttributeListCacheTTL = 10 * time.Minute

	attributeListCacheKey = "juellehair:attributes:list"
)

type AttributesRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewAttributesRepository(db *gorm.DB, redisClient *redis.Client) *AttributesRepository {
	return &AttributesRepository{db: db, redis: redisClient}
}

func (r *AttributesRepository) invalidateCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, attributeListCacheKey)
}

// GetAttributes lists all attributes with their terms in position order
func (r *AttributesRepository) GetAttributes(ctx context.Context) ([]models.Attribute, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, attributeListCacheKey).Result()
		if err == nil {
			var attributes []models.Attribute
			if err := json.Unmarshal([]byte(val), &attributes); err == nil {
				return attributes, nil
			}
		}
	}

	var attributes []models.Attribute
	err := r.db.
		Preload("Terms", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Order("created_at ASC").
		Find(&attributes).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(attributes)
		if err == nil {
			r.redis.Set(ctx, attributeListCacheKey, data, AttributeListCacheTTL)
		}
	}

	return attributes, nil
}

// GetAttributeByID retrieves an attribute with its terms
func (r *AttributesRepository) GetAttributeByID(attributeID uuid.UUID) (*models.Attribute, error) {
	var attribute models.Attribute
	err := r.db.
		Preload("Terms", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("id = ?", attributeID).
		First(&attribute).Error
	if err != nil {
		return nil, err
	}
	return &attribute, nil
}

// GetAttributeByName retrieves an attribute by its display name
func (r *AttributesRepository) GetAttributeByName(name string) (*models.Attribute, error) {
	var attribute models.Attribute
	err := r.db.
		Preload("Terms", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("name = ?", name).
		First(&attribute).Error
	if err != nil {
		return nil, err
	}
	return &attribute, nil
}

// CreateAttribute creates an attribute with optional initial terms
func (r *AttributesRepository) CreateAttribute(attribute *models.Attribute) error {
	attribute.CreatedAt = time.Now()
	attribute.UpdatedAt = time.Now()
	if attribute.ID == uuid.Nil {
		attribute.ID = uuid.New()
	}

	err := r.db.Create(attribute).Error
	if err == nil {
		r.invalidateCache(context.Background())
	}
	return err
}

// DeleteAttribute deletes an attribute; the DB cascade removes its terms.
// Hard delete, so the unique attribute name can be reused.
func (r *AttributesRepository) DeleteAttribute(attributeID uuid.UUID) error {
	err := r.db.Unscoped().Where("id = ?", attributeID).Delete(&models.Attribute{}).Error
	if err == nil {
		r.invalidateCache(context.Background())
	}
	return err
}

// CreateTerm adds a term to an attribute. The unique index on
// (attribute_id, name) rejects duplicate terms.
func (r *AttributesRepository) CreateTerm(term *models.AttributeTerm) error {
	term.CreatedAt = time.Now()
	term.UpdatedAt = time.Now()
	if term.ID == uuid.Nil {
		term.ID = uuid.New()
	}

	err := r.db.Create(term).Error
	if err == nil {
		r.invalidateCache(context.Background())
	}
	return err
}

// DeleteTerm removes a term from an attribute. Hard delete: the unique
// (attribute_id, name) slot must be free if the term is re-added later.
func (r *AttributesRepository) DeleteTerm(termID uuid.UUID) error {
	err := r.db.Unscoped().Where("id = ?", termID).Delete(&models.AttributeTerm{}).Error
	if err == nil {
		r.invalidateCache(context.Background())
	}
	return err
}
