// Package gateway abstracts payment providers behind a single interface so
// checkout does not care whether an order is paid online or on delivery.
package gateway

import "context"

// PaymentRequest carries everything a provider needs to start a payment
type PaymentRequest struct {
	OrderID       string
	OrderNumber   string
	Amount        float64
	Currency      string
	Description   string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	SuccessURL    string
	CancelURL     string
}

// PaymentResult reports the outcome of starting a payment. RedirectURL is
// set when the provider hosts the payment page.
type PaymentResult struct {
	Reference   string
	Status      string
	RedirectURL string
}

// PaymentGateway is the payment provider contract
type PaymentGateway interface {
	Name() string
	CreatePayment(ctx context.Context, req *PaymentRequest) (*PaymentResult, error)
}

// CashOnDelivery is the zero-integration gateway: the order is recorded and
// settled when the courier collects payment.
type CashOnDelivery struct{}

func (CashOnDelivery) Name() string {
	return "cash_on_delivery"
}

func (CashOnDelivery) CreatePayment(_ context.Context, req *PaymentRequest) (*PaymentResult, error) {
	return &PaymentResult{
		Reference: "cod-" + req.OrderNumber,
		Status:    "pending",
	}, nil
}
