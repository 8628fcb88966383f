package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/events"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/gateway"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
)

// CheckoutService turns a cart submission into an order: it reprices every
// line from the database, applies the shipping zone's fee rules and hands the
// total to the selected payment gateway. Client-submitted prices are never
// trusted.
type CheckoutService struct {
	products *repository.ProductsRepository
	orders   *repository.OrdersRepository
	gateways map[string]gateway.PaymentGateway
	events   *events.Publisher
	logger   *logrus.Entry
	currency string
}

func NewCheckoutService(
	products *repository.ProductsRepository,
	orders *repository.OrdersRepository,
	gateways map[string]gateway.PaymentGateway,
	publisher *events.Publisher,
	logger *logrus.Logger,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		gateways: gateways,
		events:   publisher,
		logger:   logger.WithField("component", "checkout"),
		currency: currency,
	}
}

// ShippingFee resolves the delivery fee for a zone and subtotal. Crossing
// the zone's free-shipping threshold zeroes the fee; a zone without a
// threshold always charges.
func ShippingFee(zone *models.ShippingZone, subtotal float64) float64 {
	if zone.FreeShippingThresholdGhs != nil && subtotal >= *zone.FreeShippingThresholdGhs {
		return 0
	}
	return zone.FeeGhs
}

// Checkout validates the cart, creates the order and starts payment
func (s *CheckoutService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Order, *gateway.PaymentResult, error) {
	zoneID, err := uuid.Parse(req.ShippingZoneID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid shipping zone id: %w", err)
	}
	zone, err := s.orders.GetShippingZoneByID(zoneID)
	if err != nil {
		return nil, nil, fmt.Errorf("shipping zone not found: %w", err)
	}
	if zone.IsActive != nil && !*zone.IsActive {
		return nil, nil, fmt.Errorf("shipping zone %q is not available", zone.Name)
	}

	items, subtotal, err := s.priceItems(req.Items)
	if err != nil {
		return nil, nil, err
	}

	shippingFee := ShippingFee(zone, subtotal)

	order := &models.Order{
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.Address,
		ShippingZoneID:  &zone.ID,
		SubtotalGhs:     subtotal,
		ShippingGhs:     shippingFee,
		TotalGhs:        subtotal + shippingFee,
		Notes:           req.Notes,
		Items:           items,
	}

	if err := s.orders.CreateOrder(order); err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.orders.DecrementStock(order.Items); err != nil {
		s.logger.WithError(err).WithField("order", order.OrderNumber).Warn("Failed to decrement stock")
	}

	payment, err := s.startPayment(ctx, order, req)
	if err != nil {
		return nil, nil, err
	}
	if payment != nil && payment.Reference != "" {
		if err := s.orders.UpdatePaymentStatus(order.ID, models.PaymentStatusPending, &payment.Reference); err != nil {
			s.logger.WithError(err).WithField("order", order.OrderNumber).Warn("Failed to record payment reference")
		}
		order.PaymentRef = &payment.Reference
	}

	s.events.Publish(events.OrderCreated, order.ID.String(), req.Address.Email, map[string]interface{}{
		"orderNumber": order.OrderNumber,
		"totalGhs":    order.TotalGhs,
		"items":       len(order.Items),
	})

	s.logger.WithFields(logrus.Fields{
		"order":    order.OrderNumber,
		"total":    order.TotalGhs,
		"shipping": shippingFee,
	}).Info("Order created")

	return order, payment, nil
}

// priceItems loads every ordered product/variant and builds the denormalized
// order lines with server-side prices
func (s *CheckoutService) priceItems(items []models.CheckoutItem) ([]models.OrderItem, float64, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	var subtotal float64

	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid product id %q: %w", item.ProductID, err)
		}
		product, err := s.products.GetProductByID(productID, true)
		if err != nil {
			return nil, 0, fmt.Errorf("product %s not found: %w", item.ProductID, err)
		}
		if product.Status != models.ProductStatusActive {
			return nil, 0, fmt.Errorf("product %q is not available", product.Name)
		}

		line := models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			UnitPriceGhs: product.PriceGhs,
			Quantity:     item.Quantity,
		}

		if item.VariantID != nil {
			variantID, err := uuid.Parse(*item.VariantID)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid variant id %q: %w", *item.VariantID, err)
			}
			variant := findProductVariant(product, variantID)
			if variant == nil {
				return nil, 0, fmt.Errorf("variant %s does not belong to product %q", *item.VariantID, product.Name)
			}
			if variant.Stock < item.Quantity {
				return nil, 0, fmt.Errorf("insufficient stock for %q (%s)", product.Name, variant.Value)
			}
			line.VariantID = &variant.ID
			line.VariantValue = &variant.Value
			line.UnitPriceGhs = variant.PriceGhs
			// A discounted variant sells at its sale price
			if variant.CompareAtPriceGhs != nil && *variant.CompareAtPriceGhs < variant.PriceGhs {
				line.UnitPriceGhs = *variant.CompareAtPriceGhs
			}
		} else {
			if product.ProductType == models.ProductTypeVariable {
				return nil, 0, fmt.Errorf("product %q requires a variant selection", product.Name)
			}
			if product.Stock < item.Quantity {
				return nil, 0, fmt.Errorf("insufficient stock for %q", product.Name)
			}
			if product.CompareAtPriceGhs != nil && *product.CompareAtPriceGhs < product.PriceGhs {
				line.UnitPriceGhs = *product.CompareAtPriceGhs
			}
		}

		subtotal += line.UnitPriceGhs * float64(line.Quantity)
		orderItems = append(orderItems, line)
	}

	return orderItems, subtotal, nil
}

func (s *CheckoutService) startPayment(ctx context.Context, order *models.Order, req *models.CheckoutRequest) (*gateway.PaymentResult, error) {
	gw, ok := s.gateways[req.PaymentMethod]
	if !ok {
		return nil, fmt.Errorf("unsupported payment method %q", req.PaymentMethod)
	}

	paymentReq := &gateway.PaymentRequest{
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		Amount:        order.TotalGhs,
		Currency:      s.currency,
		Description:   fmt.Sprintf("Juelle Hair GH order %s", order.OrderNumber),
		CustomerEmail: req.Address.Email,
		CustomerName:  req.Address.FullName,
		CustomerPhone: req.Address.Phone,
	}
	if req.SuccessURL != nil {
		paymentReq.SuccessURL = *req.SuccessURL
	}
	if req.CancelURL != nil {
		paymentReq.CancelURL = *req.CancelURL
	}

	return gw.CreatePayment(ctx, paymentReq)
}

func findProductVariant(product *models.Product, variantID uuid.UUID) *models.ProductVariant {
	for _, v := range product.Variants {
		if v.ID == variantID {
			return v
		}
	}
	return nil
}
