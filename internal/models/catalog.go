package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a product category
type Category struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string          `json:"name" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty" gorm:"column:image_url"`
	ParentID    *uuid.UUID      `json:"parentId,omitempty" gorm:"column:parent_id"`
	Position    int             `json:"position" gorm:"not null;default:1"`
	IsActive    *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Brand represents a product brand
type Brand struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string          `json:"name" gorm:"not null;uniqueIndex"`
	Slug        string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description *string         `json:"description,omitempty"`
	LogoURL     *string         `json:"logoUrl,omitempty" gorm:"column:logo_url"`
	IsActive    *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Collection represents a curated product collection (e.g. "Summer Bundles")
type Collection struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string          `json:"name" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty" gorm:"column:image_url"`
	IsActive    *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	Position    int             `json:"position" gorm:"not null;default:1"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Position    *int    `json:"position,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

// UpdateCollectionRequest represents a request to update a collection
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Position    *int    `json:"position,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type CategoryResponse struct {
	Success bool      `json:"success"`
	Data    *Category `json:"data"`
	Message *string   `json:"message,omitempty"`
}

type CategoryListResponse struct {
	Success    bool            `json:"success"`
	Data       []Category      `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TableName returns the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}

// TableName returns the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
