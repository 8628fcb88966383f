package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
)

type AttributesHandler struct {
	repo   *repository.AttributesRepository
	logger *logrus.Entry
}

func NewAttributesHandler(repo *repository.AttributesRepository, logger *logrus.Logger) *AttributesHandler {
	return &AttributesHandler{
		repo:   repo,
		logger: logger.WithField("component", "attributes"),
	}
}

// GetAttributes lists all attributes with their terms. The variation form
// loads this once and builds its term pickers from it.
// @Summary List attributes
// @Tags attributes
// @Produce json
// @Success 200 {object} models.AttributeListResponse
// @Router /admin/attributes [get]
func (h *AttributesHandler) GetAttributes(c *gin.Context) {
	attributes, err := h.repo.GetAttributes(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list attributes")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list attributes",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.AttributeListResponse{Success: true, Data: attributes})
}

// CreateAttribute creates an attribute with optional initial terms
func (h *AttributesHandler) CreateAttribute(c *gin.Context) {
	var req models.CreateAttributeRequest
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

	attribute := &models.Attribute{Name: req.Name}
	for i, term := range req.Terms {
		attribute.Terms = append(attribute.Terms, models.AttributeTerm{
			Name:     term,
			Position: i,
		})
	}

	if err := h.repo.CreateAttribute(attribute); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_ATTRIBUTE",
					Message: "An attribute with this name already exists",
					Field:   "name",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create attribute")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create attribute",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.AttributeResponse{Success: true, Data: attribute})
}

// DeleteAttribute deletes an attribute and all its terms
func (h *AttributesHandler) DeleteAttribute(c *gin.Context) {
	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if _, err := h.repo.GetAttributeByID(attributeID); err != nil {
		respondNotFound(c, "Attribute not found")
		return
	}

	if err := h.repo.DeleteAttribute(attributeID); err != nil {
		h.logger.WithError(err).Error("Failed to delete attribute")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete attribute",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateTerm adds a term to an attribute
func (h *AttributesHandler) CreateTerm(c *gin.Context) {
	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.CreateAttributeTermRequest
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

	if _, err := h.repo.GetAttributeByID(attributeID); err != nil {
		respondNotFound(c, "Attribute not found")
		return
	}

	term := &models.AttributeTerm{
		AttributeID: attributeID,
		Name:        req.Name,
		Image:       req.Image,
	}
	if req.Position != nil {
		term.Position = *req.Position
	}

	if err := h.repo.CreateTerm(term); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_TERM",
					Message: "This term already exists on the attribute",
					Field:   "name",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create term")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create term",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, term)
}

// DeleteTerm removes a term from an attribute
func (h *AttributesHandler) DeleteTerm(c *gin.Context) {
	termID, err := uuid.Parse(c.Param("termId"))
	if err != nil {
		respondInvalidID(c, "termId")
		return
	}

	if err := h.repo.DeleteTerm(termID); err != nil {
		h.logger.WithError(err).Error("Failed to delete term")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete term",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
