package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/events"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/variations"
)

type ProductsHandler struct {
	repo            *repository.ProductsRepository
	eventsPublisher *events.Publisher
	logger          *logrus.Entry
}

func NewProductsHandler(repo *repository.ProductsRepository, eventsPublisher *events.Publisher, logger *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{
		repo:            repo,
		eventsPublisher: eventsPublisher,
		logger:          logger.WithField("component", "products"),
	}
}

// CreateProduct creates a new product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Success 201 {object} models.ProductResponse
// @Router /admin/products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CreateProductRequest
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

	productType := models.ProductTypeSimple
	if req.ProductType != nil {
		productType = *req.ProductType
	}

	product := &models.Product{
		Name:              req.Name,
		Slug:              req.Slug,
		SKU:               req.SKU,
		Description:       req.Description,
		ProductType:       productType,
		Status:            models.ProductStatusDraft,
		CompareAtPriceGhs: req.CompareAtPriceGhs,
		SeoTitle:          req.SeoTitle,
		SeoDescription:    req.SeoDescription,
	}

	// A variable product has no variants yet at creation time, so its price
	// starts at zero and tracks the first priced variant from then on. The
	// field is always written as a number.
	product.PriceGhs = variations.SubmitPrice(productType, req.PriceGhs, nil)

	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if id, ok := parseOptionalUUID(req.CategoryID); ok {
		product.CategoryID = id
	}
	if id, ok := parseOptionalUUID(req.BrandID); ok {
		product.BrandID = id
	}
	if id, ok := parseOptionalUUID(req.CollectionID); ok {
		product.CollectionID = id
	}

	if len(req.Images) > 0 {
		imagesArray := make(models.JSONArray, len(req.Images))
		for i, img := range req.Images {
			imagesArray[i] = img
		}
		product.Images = &imagesArray
	}
	if len(req.Badges) > 0 {
		product.Badges = stringArrayToJSON(req.Badges)
	}
	if len(req.Tags) > 0 {
		product.Tags = stringArrayToJSON(req.Tags)
	}

	if userID != nil {
		uid := userID.(string)
		product.CreatedBy = &uid
		product.UpdatedBy = &uid
	}

	if err := h.repo.CreateProduct(product); err != nil {
		h.logger.WithError(err).Error("Failed to create product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create product",
			},
		})
		return
	}

	h.eventsPublisher.Publish(events.ProductCreated, product.ID.String(), actorFrom(c), map[string]interface{}{
		"name": product.Name,
		"type": string(product.ProductType),
	})

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// GetProducts lists products with filters and pagination
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} models.ProductListResponse
// @Router /admin/products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	req := parseSearchRequest(c)

	products, total, err := h.repo.GetProducts(req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: buildPagination(req.Page, req.Limit, total),
	})
}

// GetProduct retrieves a product by ID with its variants
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	product, err := h.repo.GetProductByID(productID, true)
	if err != nil {
		respondNotFound(c, "Product not found")
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// UpdateProduct applies a partial update to a product
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateProductRequest
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

	current, err := h.repo.GetProductByID(productID, true)
	if err != nil {
		respondNotFound(c, "Product not found")
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.CompareAtPriceGhs != nil {
		updates["compare_at_price_ghs"] = *req.CompareAtPriceGhs
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.SeoTitle != nil {
		updates["seo_title"] = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		updates["seo_description"] = *req.SeoDescription
	}
	if req.CategoryID != nil {
		if id, ok := parseOptionalUUID(req.CategoryID); ok {
			updates["category_id"] = id
		}
	}
	if req.BrandID != nil {
		if id, ok := parseOptionalUUID(req.BrandID); ok {
			updates["brand_id"] = id
		}
	}
	if req.CollectionID != nil {
		if id, ok := parseOptionalUUID(req.CollectionID); ok {
			updates["collection_id"] = id
		}
	}
	if len(req.Images) > 0 {
		imagesArray := make(models.JSONArray, len(req.Images))
		for i, img := range req.Images {
			imagesArray[i] = img
		}
		updates["images"] = &imagesArray
	}
	if len(req.Badges) > 0 {
		updates["badges"] = stringArrayToJSON(req.Badges)
	}
	if len(req.Tags) > 0 {
		updates["tags"] = stringArrayToJSON(req.Tags)
	}

	// Resolve the price last: the product type may be changing in this same
	// request, and a variable product's price always derives from variants.
	productType := current.ProductType
	if req.ProductType != nil {
		productType = *req.ProductType
		updates["product_type"] = *req.ProductType
	}
	manualPrice := current.PriceGhs
	if req.PriceGhs != nil {
		manualPrice = *req.PriceGhs
	}
	updates["price_ghs"] = variations.SubmitPrice(productType, manualPrice, derefVariants(current.Variants))

	if err := h.repo.UpdateProduct(productID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update product",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(productID, true)
	if err != nil {
		respondNotFound(c, "Product not found")
		return
	}

	h.eventsPublisher.Publish(events.ProductUpdated, product.ID.String(), actorFrom(c), nil)

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// DeleteProduct soft deletes a product
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if _, err := h.repo.GetProductByID(productID, false); err != nil {
		respondNotFound(c, "Product not found")
		return
	}

	if err := h.repo.DeleteProduct(productID); err != nil {
		h.logger.WithError(err).Error("Failed to delete product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete product",
			},
		})
		return
	}

	h.eventsPublisher.Publish(events.ProductDeleted, productID.String(), actorFrom(c), nil)

	c.Status(http.StatusNoContent)
}

// Variant endpoints
//
// The admin form drives these in a strict rhythm: mutate, then immediately
// re-list. The list endpoint therefore returns the plain {variants: [...]}
// shape the form re-syncs from, in creation order.

// GetVariants lists a product's variants
// @Summary List product variants
// @Tags variants
// @Produce json
// @Param productId query string true "Product ID"
// @Success 200 {object} models.VariantListResponse
// @Router /admin/product-variants [get]
func (h *ProductsHandler) GetVariants(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		respondInvalidID(c, "productId")
		return
	}

	variants, err := h.repo.GetProductVariants(c.Request.Context(), productID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list variants")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list variants",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.VariantListResponse{Variants: variants})
}

// CreateVariant creates a variant record for a combination
func (h *ProductsHandler) CreateVariant(c *gin.Context) {
	var req models.CreateVariantRequest
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

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondInvalidID(c, "productId")
		return
	}

	product, err := h.repo.GetProductByID(productID, false)
	if err != nil {
		respondNotFound(c, "Product not found")
		return
	}

	v := &models.ProductVariant{
		ProductID:         productID,
		Name:              req.Name,
		Value:             req.Value,
		PriceGhs:          req.PriceGhs,
		CompareAtPriceGhs: req.CompareAtPriceGhs,
		Stock:             req.Stock,
		SKU:               req.SKU,
	}

	if err := h.repo.CreateVariant(v); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_VARIANT",
					Message: "A variant already exists for this combination",
					Field:   "value",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create variant")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create variant",
			},
		})
		return
	}

	h.syncHeadlinePrice(c.Request.Context(), product)

	h.eventsPublisher.Publish(events.VariantCreated, v.ID.String(), actorFrom(c), map[string]interface{}{
		"productId": productID.String(),
		"value":     v.Value,
	})

	c.JSON(http.StatusCreated, v)
}

// UpdateVariant applies a partial update to a variant
func (h *ProductsHandler) UpdateVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	updates, err := variantUpdates(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	v, err := h.repo.UpdateVariant(variantID, updates)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondNotFound(c, "Variant not found")
			return
		}
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_VARIANT",
					Message: "A variant already exists for this combination",
					Field:   "value",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to update variant")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update variant",
			},
		})
		return
	}

	if product, err := h.repo.GetProductByID(v.ProductID, false); err == nil {
		h.syncHeadlinePrice(c.Request.Context(), product)
	}

	h.eventsPublisher.Publish(events.VariantUpdated, v.ID.String(), actorFrom(c), nil)

	c.JSON(http.StatusOK, v)
}

// DeleteVariant removes a variant record
func (h *ProductsHandler) DeleteVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	v, err := h.repo.GetVariantByID(variantID)
	if err != nil {
		respondNotFound(c, "Variant not found")
		return
	}

	if err := h.repo.DeleteVariant(variantID); err != nil {
		h.logger.WithError(err).Error("Failed to delete variant")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete variant",
			},
		})
		return
	}

	if product, err := h.repo.GetProductByID(v.ProductID, false); err == nil {
		h.syncHeadlinePrice(c.Request.Context(), product)
	}

	h.eventsPublisher.Publish(events.VariantDeleted, variantID.String(), actorFrom(c), map[string]interface{}{
		"productId": v.ProductID.String(),
	})

	c.Status(http.StatusNoContent)
}

// variantUpdates maps a partial-update body to gorm column updates. The sale
// price is tri-state on the wire: an absent key leaves it untouched, an
// explicit null clears it, a number sets it. Raw key presence has to be
// checked because a nil pointer cannot tell absent and null apart.
func variantUpdates(data []byte) (map[string]interface{}, error) {
	var req models.UpdateVariantRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.PriceGhs != nil {
		updates["price_ghs"] = *req.PriceGhs
	}
	if _, present := fields["compareAtPriceGhs"]; present {
		updates["compare_at_price_ghs"] = req.CompareAtPriceGhs
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	return updates, nil
}

// syncHeadlinePrice re-derives a variable product's listing price after any
// variant mutation
func (h *ProductsHandler) syncHeadlinePrice(ctx context.Context, product *models.Product) {
	if product.ProductType != models.ProductTypeVariable {
		return
	}
	variants, err := h.repo.GetProductVariants(ctx, product.ID)
	if err != nil {
		h.logger.WithError(err).WithField("product", product.ID).Warn("Failed to re-derive headline price")
		return
	}
	price, _ := variations.DerivedPrice(variants)
	if price != product.PriceGhs {
		if err := h.repo.UpdateProductPrice(product.ID, price); err != nil {
			h.logger.WithError(err).WithField("product", product.ID).Warn("Failed to write headline price")
		}
	}
}

// Storefront endpoints

// ListStorefrontProducts lists active products for the public storefront
func (h *ProductsHandler) ListStorefrontProducts(c *gin.Context) {
	req := parseSearchRequest(c)
	active := models.ProductStatusActive
	req.Status = &active

	products, total, err := h.repo.GetProducts(req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list storefront products")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: buildPagination(req.Page, req.Limit, total),
	})
}

// GetStorefrontProduct serves a product detail page by slug
func (h *ProductsHandler) GetStorefrontProduct(c *gin.Context) {
	product, err := h.repo.GetProductBySlug(c.Param("slug"))
	if err != nil || product.Status != models.ProductStatusActive {
		respondNotFound(c, "Product not found")
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// Helpers

func parseSearchRequest(c *gin.Context) *models.SearchProductsRequest {
	req := &models.SearchProductsRequest{Page: 1, Limit: 20}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		req.Limit = limit
	}
	if q := c.Query("q"); q != "" {
		req.Query = &q
	}
	if v := c.Query("categoryId"); v != "" {
		req.CategoryID = &v
	}
	if v := c.Query("brandId"); v != "" {
		req.BrandID = &v
	}
	if v := c.Query("collectionId"); v != "" {
		req.CollectionID = &v
	}
	if v := c.Query("status"); v != "" {
		status := models.ProductStatus(v)
		req.Status = &status
	}
	if v := c.Query("productType"); v != "" {
		pt := models.ProductType(v)
		req.ProductType = &pt
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		req.IsFeatured = &featured
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		req.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		req.MaxPrice = &v
	}
	if v := c.Query("sortBy"); v != "" {
		req.SortBy = &v
	}
	if v := c.Query("sortOrder"); v != "" {
		req.SortOrder = &v
	}

	return req
}

func buildPagination(page, limit int, total int64) *models.PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

func respondInvalidID(c *gin.Context, field string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "INVALID_ID",
			Message: "Invalid UUID",
			Field:   field,
		},
	})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: message,
		},
	})
}

func actorFrom(c *gin.Context) string {
	if email, ok := c.Get("user_email"); ok {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}

func parseOptionalUUID(s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, false
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func stringArrayToJSON(values []string) *models.JSONArray {
	arr := make(models.JSONArray, len(values))
	for i, v := range values {
		arr[i] = v
	}
	return &arr
}

func derefVariants(variants []*models.ProductVariant) []models.ProductVariant {
	out := make([]models.ProductVariant, 0, len(variants))
	for _, v := range variants {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
