package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/events"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/services"
)

// OrdersHandler serves checkout, order management and shipping zones
type OrdersHandler struct {
	repo            *repository.OrdersRepository
	checkout        *services.CheckoutService
	eventsPublisher *events.Publisher
	logger          *logrus.Entry
}

func NewOrdersHandler(repo *repository.OrdersRepository, checkout *services.CheckoutService, eventsPublisher *events.Publisher, logger *logrus.Logger) *OrdersHandler {
	return &OrdersHandler{
		repo:            repo,
		checkout:        checkout,
		eventsPublisher: eventsPublisher,
		logger:          logger.WithField("component", "orders"),
	}
}

// Checkout creates an order from a storefront cart submission
// @Summary Checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Success 201 {object} models.CheckoutResponse
// @Router /storefront/checkout [post]
func (h *OrdersHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
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

	order, payment, err := h.checkout.Checkout(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Warn("Checkout rejected")
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CHECKOUT_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.CheckoutResponse{Success: true, Data: order}
	if payment != nil && payment.RedirectURL != "" {
		resp.PaymentURL = &payment.RedirectURL
	}

	c.JSON(http.StatusCreated, resp)
}

// GetOrder serves order detail for the admin dashboard
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	order, err := h.repo.GetOrderByID(orderID)
	if err != nil {
		respondNotFound(c, "Order not found")
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Data: order})
}

// TrackOrder lets a customer look up an order by its number
func (h *OrdersHandler) TrackOrder(c *gin.Context) {
	order, err := h.repo.GetOrderByNumber(c.Param("number"))
	if err != nil {
		respondNotFound(c, "Order not found")
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Data: order})
}

// GetOrders lists orders for the admin dashboard
func (h *OrdersHandler) GetOrders(c *gin.Context) {
	page, limit := parsePagination(c)

	var status *models.OrderStatus
	if v := c.Query("status"); v != "" {
		s := models.OrderStatus(v)
		status = &s
	}

	orders, total, err := h.repo.GetOrders(status, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{
		Success:    true,
		Data:       orders,
		Pagination: buildPagination(page, limit, total),
	})
}

// UpdateOrderStatus moves an order through its lifecycle
func (h *OrdersHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateOrderStatusRequest
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

	if _, err := h.repo.GetOrderByID(orderID); err != nil {
		respondNotFound(c, "Order not found")
		return
	}

	if err := h.repo.UpdateOrderStatus(orderID, req.Status, req.Notes); err != nil {
		h.logger.WithError(err).Error("Failed to update order status")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update order status",
			},
		})
		return
	}

	h.eventsPublisher.Publish(events.OrderStatusChanged, orderID.String(), actorFrom(c), map[string]interface{}{
		"status": string(req.Status),
	})

	order, err := h.repo.GetOrderByID(orderID)
	if err != nil {
		respondNotFound(c, "Order not found")
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Data: order})
}

// Shipping zones

// GetShippingZones lists active zones for the storefront checkout page
func (h *OrdersHandler) GetShippingZones(c *gin.Context) {
	zones, err := h.repo.GetShippingZones(true)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list shipping zones")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list shipping zones",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: zones})
}

// GetAllShippingZones lists every zone for the admin dashboard
func (h *OrdersHandler) GetAllShippingZones(c *gin.Context) {
	zones, err := h.repo.GetShippingZones(false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list shipping zones")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list shipping zones",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: zones})
}

func (h *OrdersHandler) CreateShippingZone(c *gin.Context) {
	var req models.CreateShippingZoneRequest
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

	zone := &models.ShippingZone{
		Name:                     req.Name,
		FeeGhs:                   req.FeeGhs,
		FreeShippingThresholdGhs: req.FreeShippingThresholdGhs,
		EstimatedDays:            req.EstimatedDays,
	}
	if req.Position != nil {
		zone.Position = *req.Position
	}
	if len(req.Regions) > 0 {
		zone.Regions = stringArrayToJSON(req.Regions)
	}

	if err := h.repo.CreateShippingZone(zone); err != nil {
		if repository.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "DUPLICATE_ZONE",
					Message: "A shipping zone with this name already exists",
					Field:   "name",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create shipping zone")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create shipping zone",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: zone})
}

func (h *OrdersHandler) UpdateShippingZone(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	var req models.UpdateShippingZoneRequest
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
	if req.FeeGhs != nil {
		updates["fee_ghs"] = *req.FeeGhs
	}
	if req.FreeShippingThresholdGhs != nil {
		updates["free_shipping_threshold_ghs"] = *req.FreeShippingThresholdGhs
	}
	if req.EstimatedDays != nil {
		updates["estimated_days"] = *req.EstimatedDays
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(req.Regions) > 0 {
		updates["regions"] = stringArrayToJSON(req.Regions)
	}

	if err := h.repo.UpdateShippingZone(zoneID, updates); err != nil {
		h.logger.WithError(err).Error("Failed to update shipping zone")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update shipping zone",
			},
		})
		return
	}

	zone, err := h.repo.GetShippingZoneByID(zoneID)
	if err != nil {
		respondNotFound(c, "Shipping zone not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: zone})
}

func (h *OrdersHandler) DeleteShippingZone(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "id")
		return
	}

	if err := h.repo.DeleteShippingZone(zoneID); err != nil {
		h.logger.WithError(err).Error("Failed to delete shipping zone")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete shipping zone",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
