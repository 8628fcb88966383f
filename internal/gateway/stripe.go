package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway implements the PaymentGateway interface for Stripe hosted
// checkout sessions
type StripeGateway struct {
	secretKey string
}

// NewStripeGateway creates a new Stripe gateway instance
func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("Stripe secret key is required")
	}
	return &StripeGateway{secretKey: secretKey}, nil
}

func (g *StripeGateway) Name() string {
	return "stripe"
}

// CreatePayment creates a Stripe Checkout Session for the hosted payment page
func (g *StripeGateway) CreatePayment(ctx context.Context, req *PaymentRequest) (*PaymentResult, error) {
	stripe.Key = g.secretKey

	// Convert amount to the smallest currency unit
	amountCents := int64(req.Amount * 100)

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = "http://localhost:3000/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = "http://localhost:3000/checkout?cancelled=true"
	}

	lineItems := []*stripe.CheckoutSessionLineItemParams{
		{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(req.Currency)),
				UnitAmount: stripe.Int64(amountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(req.Description),
					Description: stripe.String(fmt.Sprintf("Order %s", req.OrderNumber)),
				},
			},
			Quantity: stripe.Int64(1),
		},
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata: map[string]string{
			"order_id":     req.OrderID,
			"order_number": req.OrderNumber,
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"order_id":     req.OrderID,
				"order_number": req.OrderNumber,
			},
		},
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &PaymentResult{
		Reference:   sess.ID,
		Status:      string(sess.Status),
		RedirectURL: sess.URL,
	}, nil
}
