package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPostStatus represents the status of a blog post
type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "DRAFT"
	BlogPostStatusPublished BlogPostStatus = "PUBLISHED"
	BlogPostStatusArchived  BlogPostStatus = "ARCHIVED"
)

// Banner represents a storefront hero/promo banner
type Banner struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string          `json:"title" gorm:"not null"`
	Subtitle  *string         `json:"subtitle,omitempty"`
	ImageURL  string          `json:"imageUrl" gorm:"column:image_url;not null"`
	LinkURL   *string         `json:"linkUrl,omitempty" gorm:"column:link_url"`
	Position  int             `json:"position" gorm:"not null;default:1"`
	IsActive  *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	StartsAt  *time.Time      `json:"startsAt,omitempty"`
	EndsAt    *time.Time      `json:"endsAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// BlogPost represents a blog article
type BlogPost struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string          `json:"title" gorm:"type:varchar(500);not null"`
	Slug          string          `json:"slug" gorm:"not null;uniqueIndex"`
	Excerpt       *string         `json:"excerpt,omitempty" gorm:"type:text"`
	Content       string          `json:"content" gorm:"type:text;not null"`
	FeaturedImage *string         `json:"featuredImage,omitempty"`
	AuthorName    *string         `json:"authorName,omitempty"`
	Status        BlogPostStatus  `json:"status" gorm:"not null;default:'DRAFT';index"`
	Tags          *JSONArray      `json:"tags,omitempty" gorm:"type:jsonb"`
	PublishedAt   *time.Time      `json:"publishedAt,omitempty" gorm:"index"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// BadgeTemplate represents a reusable product badge ("New In", "Best Seller")
type BadgeTemplate struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Label           string          `json:"label" gorm:"not null;uniqueIndex"`
	BackgroundColor string          `json:"backgroundColor" gorm:"column:background_color;not null;default:'#000000'"`
	TextColor       string          `json:"textColor" gorm:"column:text_color;not null;default:'#FFFFFF'"`
	IsActive        *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// MediaFile represents uploaded media metadata. The bytes live in external
// storage; this service only tracks the URL and bookkeeping fields.
type MediaFile struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FileName  string          `json:"fileName" gorm:"column:file_name;not null"`
	URL       string          `json:"url" gorm:"not null"`
	MimeType  *string         `json:"mimeType,omitempty" gorm:"column:mime_type"`
	SizeBytes *int64          `json:"sizeBytes,omitempty" gorm:"column:size_bytes"`
	AltText   *string         `json:"altText,omitempty" gorm:"column:alt_text"`
	Folder    *string         `json:"folder,omitempty" gorm:"index"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateBannerRequest represents a request to create a banner
type CreateBannerRequest struct {
	Title    string     `json:"title" binding:"required"`
	Subtitle *string    `json:"subtitle,omitempty"`
	ImageURL string     `json:"imageUrl" binding:"required"`
	LinkURL  *string    `json:"linkUrl,omitempty"`
	Position *int       `json:"position,omitempty"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

// UpdateBannerRequest represents a request to update a banner
type UpdateBannerRequest struct {
	Title    *string    `json:"title,omitempty"`
	Subtitle *string    `json:"subtitle,omitempty"`
	ImageURL *string    `json:"imageUrl,omitempty"`
	LinkURL  *string    `json:"linkUrl,omitempty"`
	Position *int       `json:"position,omitempty"`
	IsActive *bool      `json:"isActive,omitempty"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

// CreateBlogPostRequest represents a request to create a blog post
type CreateBlogPostRequest struct {
	Title         string   `json:"title" binding:"required"`
	Slug          *string  `json:"slug,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Content       string   `json:"content" binding:"required"`
	FeaturedImage *string  `json:"featuredImage,omitempty"`
	AuthorName    *string  `json:"authorName,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Publish       bool     `json:"publish,omitempty"`
}

// UpdateBlogPostRequest represents a request to update a blog post
type UpdateBlogPostRequest struct {
	Title         *string         `json:"title,omitempty"`
	Slug          *string         `json:"slug,omitempty"`
	Excerpt       *string         `json:"excerpt,omitempty"`
	Content       *string         `json:"content,omitempty"`
	FeaturedImage *string         `json:"featuredImage,omitempty"`
	AuthorName    *string         `json:"authorName,omitempty"`
	Status        *BlogPostStatus `json:"status,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

// CreateBadgeTemplateRequest represents a request to create a badge template
type CreateBadgeTemplateRequest struct {
	Label           string  `json:"label" binding:"required"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
}

// CreateMediaFileRequest registers an uploaded file's metadata
type CreateMediaFileRequest struct {
	FileName  string  `json:"fileName" binding:"required"`
	URL       string  `json:"url" binding:"required"`
	MimeType  *string `json:"mimeType,omitempty"`
	SizeBytes *int64  `json:"sizeBytes,omitempty"`
	AltText   *string `json:"altText,omitempty"`
	Folder    *string `json:"folder,omitempty"`
}

// TableName returns the table name for the Banner model
func (Banner) TableName() string {
	return "banners"
}

// TableName returns the table name for the BlogPost model
func (BlogPost) TableName() string {
	return "blog_posts"
}

// TableName returns the table name for the BadgeTemplate model
func (BadgeTemplate) TableName() string {
	return "badge_templates"
}

// TableName returns the table name for the MediaFile model
func (MediaFile) TableName() string {
	return "media_files"
}
