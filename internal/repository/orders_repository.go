package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

// OrdersRepository persists orders and shipping zones
type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// Shipping zones

func (r *OrdersRepository) GetShippingZones(activeOnly bool) ([]models.ShippingZone, error) {
	var zones []models.ShippingZone
	query := r.db.Order("position ASC, created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&zones).Error
	return zones, err
}

func (r *OrdersRepository) GetShippingZoneByID(zoneID uuid.UUID) (*models.ShippingZone, error) {
	var zone models.ShippingZone
	if err := r.db.Where("id = ?", zoneID).First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *OrdersRepository) CreateShippingZone(zone *models.ShippingZone) error {
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = time.Now()
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	return r.db.Create(zone).Error
}

func (r *OrdersRepository) UpdateShippingZone(zoneID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.ShippingZone{}).Where("id = ?", zoneID).Updates(updates).Error
}

func (r *OrdersRepository) DeleteShippingZone(zoneID uuid.UUID) error {
	return r.db.Where("id = ?", zoneID).Delete(&models.ShippingZone{}).Error
}

// Orders

// CreateOrder writes the order and its line items in one transaction
func (r *OrdersRepository) CreateOrder(order *models.Order) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *OrdersRepository) GetOrderByID(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrdersRepository) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrdersRepository) GetOrders(status *models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *OrdersRepository) UpdateOrderStatus(orderID uuid.UUID, status models.OrderStatus, notes *string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func (r *OrdersRepository) UpdatePaymentStatus(orderID uuid.UUID, status models.PaymentStatus, paymentRef *string) error {
	updates := map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now(),
	}
	if paymentRef != nil {
		updates["payment_ref"] = *paymentRef
	}
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

// DecrementStock reduces stock for the ordered product or variant rows
func (r *OrdersRepository) DecrementStock(items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if item.VariantID != nil {
				err := tx.Model(&models.ProductVariant{}).
					Where("id = ? AND stock >= ?", *item.VariantID, item.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error
				if err != nil {
					return err
				}
			} else {
				err := tx.Model(&models.Product{}).
					Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// generateOrderNumber builds a human-readable order reference
func generateOrderNumber() string {
	return fmt.Sprintf("JH-%s-%s",
		time.Now().Format("20060102"),
		uuid.New().String()[:8])
}
