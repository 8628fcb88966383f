package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
)

// ContentHandler serves banners, blog posts, badge templates and media
type ContentHandler struct {
	repo   *repository.ContentRepository
	logger *logrus.Entry
}

func NewContentHandler(repo *repository.ContentRepository, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		repo:   repo,
		logger: logger.WithField("component", "content"),
	}
}

// Banners

// GetActiveBanners serves the storefront banner strip
func (h *ContentHandler) GetActiveBanners(c *gin.Context) {
	banners, err := h.repo.GetActiveBanners(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list banners")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list banners",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: banners})
}

// GetBanners lists all banners for the admin dashboard
func (h *ContentHandler) GetBanners(c *gin.Context) {
	banners, err := h.repo.GetBanners()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list banners")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list banners",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: banners})
}

func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var req models.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	banner := &models.Banner{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if req.Position != nil {
		banner.Position = *req.Position
	}

	if err := h.repo.CreateBanner(banner); err != nil {
		h.logger.WithError(err).Error("Failed to create banner")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create banner",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: banner})
}

func (h *ContentHandler) UpdateBanner(c *gin.Context) {
	bannerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.LinkURL != nil {
		updates["link_url"] = *req.LinkURL
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}

	if err := h.repo.UpdateBanner(bannerID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update banner")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update banner",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	bannerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteBanner(bannerID); err != nil {
		h.logger.WithError(err).Error("Failed to delete banner")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete banner",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// Blog posts

// GetPublishedPosts serves the storefront blog listing
func (h *ContentHandler) GetPublishedPosts(c *gin.Context) {
	page, limit := parsePagination(c)
	published := models.BlogPostStatusPublished

	posts, total, err := h.repo.GetBlogPosts(&published, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list blog posts")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list blog posts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       posts,
		"pagination": buildPagination(page, limit, total),
	})
}

// GetPostBySlug serves a single published article
func (h *ContentHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.repo.GetBlogPostBySlug(c.Param("slug"))
	if err != nil || post.Status != models.BlogPostStatusPublished {
		respondNotFound(c, "Post not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: post})
}

// GetPosts lists all posts for the admin dashboard
func (h *ContentHandler) GetPosts(c *gin.Context) {
	page, limit := parsePagination(c)

	var status *models.BlogPostStatus
	if v := c.Query("status"); v != "" {
		s := models.BlogPostStatus(v)
		status = &s
	}

	posts, total, err := h.repo.GetBlogPosts(status, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list blog posts")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list blog posts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       posts,
		"pagination": buildPagination(page, limit, total),
	})
}

func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req models.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	post := &models.BlogPost{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		AuthorName:    req.AuthorName,
		Status:        models.BlogPostStatusDraft,
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if len(req.Tags) > 0 {
		post.Tags = stringArrayToJSON(req.Tags)
	}
	if req.Publish {
		now := time.Now()
		post.Status = models.BlogPostStatusPublished
		post.PublishedAt = &now
	}

	if err := h.repo.CreateBlogPost(post); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_SLUG",
					Message: "A post with this slug already exists",
					Field:   "slug",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create post")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create post",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: post})
}

func (h *ContentHandler) UpdatePost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	current, err := h.repo.GetBlogPostByID(postID)
	if err != nil {
		respondNotFound(c, "Post not found")
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if req.AuthorName != nil {
		updates["author_name"] = *req.AuthorName
	}
	if len(req.Tags) > 0 {
		updates["tags"] = stringArrayToJSON(req.Tags)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		// First transition to published stamps the publication time
		if *req.Status == models.BlogPostStatusPublished && current.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if err := h.repo.UpdateBlogPost(postID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update post")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update post",
			},
		})
		return
	}

	post, err := h.repo.GetBlogPostByID(postID)
	if err != nil {
		respondNotFound(c, "Post not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: post})
}

func (h *ContentHandler) DeletePost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteBlogPost(postID); err != nil {
		h.logger.WithError(err).Error("Failed to delete post")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete post",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// Badge templates

func (h *ContentHandler) GetBadgeTemplates(c *gin.Context) {
	badges, err := h.repo.GetBadgeTemplates()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list badge templates")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list badge templates",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: badges})
}

func (h *ContentHandler) CreateBadgeTemplate(c *gin.Context) {
	var req models.CreateBadgeTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	badge := &models.BadgeTemplate{Label: req.Label}
	if req.BackgroundColor != nil {
		badge.BackgroundColor = *req.BackgroundColor
	}
	if req.TextColor != nil {
		badge.TextColor = *req.TextColor
	}

	if err := h.repo.CreateBadgeTemplate(badge); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_BADGE",
					Message: "A badge with this label already exists",
					Field:   "label",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create badge template")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create badge template",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: badge})
}

func (h *ContentHandler) DeleteBadgeTemplate(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteBadgeTemplate(badgeID); err != nil {
		h.logger.WithError(err).Error("Failed to delete badge template")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete badge template",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// Media files

func (h *ContentHandler) GetMediaFiles(c *gin.Context) {
	page, limit := parsePagination(c)

	var folder *string
	if v := c.Query("folder"); v != "" {
		folder = &v
	}

	files, total, err := h.repo.GetMediaFiles(folder, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list media files")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list media files",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       files,
		"pagination": buildPagination(page, limit, total),
	})
}

func (h *ContentHandler) CreateMediaFile(c *gin.Context) {
	var req models.CreateMediaFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	file := &models.MediaFile{
		FileName:  req.FileName,
		URL:       req.URL,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		AltText:   req.AltText,
		Folder:    req.Folder,
	}

	if err := h.repo.CreateMediaFile(file); err != nil {
		h.logger.WithError(err).Error("Failed to register media file")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to register media file",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: file})
}

func (h *ContentHandler) DeleteMediaFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteMediaFile(fileID); err != nil {
		h.logger.WithError(err).Error("Failed to delete media file")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete media file",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func parsePagination(c *gin.Context) (int, int) {
	page, limit := 1, 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
