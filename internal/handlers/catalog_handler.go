package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
)

// CatalogHandler serves categories, brands and collections
type CatalogHandler struct {
	repo   *repository.CatalogRepository
	logger *logrus.Entry
}

func NewCatalogHandler(repo *repository.CatalogRepository, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:   repo,
		logger: logger.WithField("component", "catalog"),
	}
}

// Categories

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.GetCategories(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list categories")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.CategoryListResponse{Success: true, Data: categories})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
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

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Position != nil {
		category.Position = *req.Position
	}
	if id, ok := parseOptionalUUID(req.ParentID); ok {
		category.ParentID = id
	}

	if err := h.repo.CreateCategory(category); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_CATEGORY",
					Message: "A category with this slug already exists",
					Field:   "slug",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create category")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.CategoryResponse{Success: true, Data: category})
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateCategoryRequest
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
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.ParentID != nil {
		if id, ok := parseOptionalUUID(req.ParentID); ok {
			updates["parent_id"] = id
		}
	}

	if err := h.repo.UpdateCategory(categoryID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update category")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update category",
			},
		})
		return
	}

	category, err := h.repo.GetCategoryByID(categoryID)
	if err != nil {
		respondNotFound(c, "Category not found")
		return
	}

	c.JSON(http.StatusOK, models.CategoryResponse{Success: true, Data: category})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	count, err := h.repo.CountProductsInCategory(categoryID)
	if err == nil && count > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CATEGORY_IN_USE",
				Message: fmt.Sprintf("Category is referenced by %d products", count),
			},
		})
		return
	}

	if err := h.repo.DeleteCategory(categoryID); err != nil {
		h.logger.WithError(err).Error("Failed to delete category")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete category",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// Brands

func (h *CatalogHandler) GetBrands(c *gin.Context) {
	brands, err := h.repo.GetBrands()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list brands")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list brands",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: brands})
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req models.CreateBrandRequest
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

	brand := &models.Brand{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	if req.Slug != nil {
		brand.Slug = *req.Slug
	}

	if err := h.repo.CreateBrand(brand); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_BRAND",
					Message: "A brand with this name already exists",
					Field:   "name",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create brand")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create brand",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: brand})
}

func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateBrandRequest
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
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := h.repo.UpdateBrand(brandID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update brand")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update brand",
			},
		})
		return
	}

	brand, err := h.repo.GetBrandByID(brandID)
	if err != nil {
		respondNotFound(c, "Brand not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: brand})
}

func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteBrand(brandID); err != nil {
		h.logger.WithError(err).Error("Failed to delete brand")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete brand",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// Collections

func (h *CatalogHandler) GetCollections(c *gin.Context) {
	collections, err := h.repo.GetCollections()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list collections")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list collections",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: collections})
}

func (h *CatalogHandler) CreateCollection(c *gin.Context) {
	var req models.CreateCollectionRequest
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

	collection := &models.Collection{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Slug != nil {
		collection.Slug = *req.Slug
	}
	if req.Position != nil {
		collection.Position = *req.Position
	}

	if err := h.repo.CreateCollection(collection); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_COLLECTION",
					Message: "A collection with this slug already exists",
					Field:   "slug",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create collection")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create collection",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: collection})
}

func (h *CatalogHandler) UpdateCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateCollectionRequest
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
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := h.repo.UpdateCollection(collectionID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update collection")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update collection",
			},
		})
		return
	}

	collection, err := h.repo.GetCollectionByID(collectionID)
	if err != nil {
		respondNotFound(c, "Collection not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: collection})
}

func (h *CatalogHandler) DeleteCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteCollection(collectionID); err != nil {
		h.logger.WithError(err).Error("Failed to delete collection")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete collection",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
