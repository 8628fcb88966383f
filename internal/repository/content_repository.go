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
	BannerListCacheTTL = 5 * time.Minute

	bannerListCacheKey = "juellehair:banners:active"
)

// ContentRepository persists storefront content: banners, blog posts, badge
// templates and media metadata.
type ContentRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewContentRepository(db *gorm.DB, redisClient *redis.Client) *ContentRepository {
	return &ContentRepository{db: db, redis: redisClient}
}

func (r *ContentRepository) invalidateBannerCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, bannerListCacheKey)
}

// Banners

// GetActiveBanners lists banners currently in their display window, cached
// since the storefront home page requests them on every load
func (r *ContentRepository) GetActiveBanners(ctx context.Context) ([]models.Banner, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, bannerListCacheKey).Result()
		if err == nil {
			var banners []models.Banner
			if err := json.Unmarshal([]byte(val), &banners); err == nil {
				return banners, nil
			}
		}
	}

	now := time.Now()
	var banners []models.Banner
	err := r.db.
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("position ASC, created_at ASC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(banners)
		if err == nil {
			r.redis.Set(ctx, bannerListCacheKey, data, BannerListCacheTTL)
		}
	}

	return banners, nil
}

func (r *ContentRepository) GetBanners() ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.Order("position ASC, created_at ASC").Find(&banners).Error
	return banners, err
}

func (r *ContentRepository) CreateBanner(banner *models.Banner) error {
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()
	if banner.ID == uuid.Nil {
		banner.ID = uuid.New()
	}
	err := r.db.Create(banner).Error
	if err == nil {
		r.invalidateBannerCache(context.Background())
	}
	return err
}

func (r *ContentRepository) UpdateBanner(bannerID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	err := r.db.Model(&models.Banner{}).Where("id = ?", bannerID).Updates(updates).Error
	if err == nil {
		r.invalidateBannerCache(context.Background())
	}
	return err
}

func (r *ContentRepository) DeleteBanner(bannerID uuid.UUID) error {
	err := r.db.Where("id = ?", bannerID).Delete(&models.Banner{}).Error
	if err == nil {
		r.invalidateBannerCache(context.Background())
	}
	return err
}

// Blog posts

func (r *ContentRepository) GetBlogPosts(status *models.BlogPostStatus, page, limit int) ([]models.BlogPost, int64, error) {
	var posts []models.BlogPost
	var total int64

	query := r.db.Model(&models.BlogPost{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("COALESCE(published_at, created_at) DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *ContentRepository) GetBlogPostBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepository) GetBlogPostByID(postID uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Where("id = ?", postID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepository) CreateBlogPost(post *models.BlogPost) error {
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.Slug == "" {
		post.Slug = generateSlug(post.Title)
	}
	return r.db.Create(post).Error
}

func (r *ContentRepository) UpdateBlogPost(postID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.BlogPost{}).Where("id = ?", postID).Updates(updates).Error
}

func (r *ContentRepository) DeleteBlogPost(postID uuid.UUID) error {
	return r.db.Where("id = ?", postID).Delete(&models.BlogPost{}).Error
}

// Badge templates

func (r *ContentRepository) GetBadgeTemplates() ([]models.BadgeTemplate, error) {
	var badges []models.BadgeTemplate
	err := r.db.Order("created_at ASC").Find(&badges).Error
	return badges, err
}

func (r *ContentRepository) CreateBadgeTemplate(badge *models.BadgeTemplate) error {
	badge.CreatedAt = time.Now()
	badge.UpdatedAt = time.Now()
	if badge.ID == uuid.Nil {
		badge.ID = uuid.New()
	}
	return r.db.Create(badge).Error
}

func (r *ContentRepository) DeleteBadgeTemplate(badgeID uuid.UUID) error {
	return r.db.Where("id = ?", badgeID).Delete(&models.BadgeTemplate{}).Error
}

// Media files

func (r *ContentRepository) GetMediaFiles(folder *string, page, limit int) ([]models.MediaFile, int64, error) {
	var files []models.MediaFile
	var total int64

	query := r.db.Model(&models.MediaFile{})
	if folder != nil {
		query = query.Where("folder = ?", *folder)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&files).Error
	if err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

func (r *ContentRepository) CreateMediaFile(file *models.MediaFile) error {
	file.CreatedAt = time.Now()
	file.UpdatedAt = time.Now()
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	return r.db.Create(file).Error
}

func (r *ContentRepository) DeleteMediaFile(fileID uuid.UUID) error {
	return r.db.Where("id = ?", fileID).Delete(&models.MediaFile{}).Error
}
