package payment

import (
	"context"
	"fmt"

	"mediq/config"
	"mediq/models"

	"github.com/stripe/stripe-go/v76"
	checkout "github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeBridge implements Bridge using Stripe hosted Checkout.
type StripeBridge struct{}

// NewStripeBridge returns a Bridge backed by Stripe. The global stripe.Key
// must already be set from configuration.
func NewStripeBridge() Bridge {
	return &StripeBridge{}
}

// CreateSession opens a Stripe Checkout session in payment mode.
func (b *StripeBridge) CreateSession(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*models.CheckoutSession, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid checkout amount: %d", amount)
	}
	if currency == "" {
		currency = config.AppConfig.PaymentCurrency
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(config.AppConfig.CheckoutSuccessURL),
		CancelURL:  stripe.String(config.AppConfig.CheckoutCancelURL),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := checkout.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &models.CheckoutSession{SessionID: sess.ID, RedirectURL: sess.URL}, nil
}

// RetrieveSession resolves a Stripe Checkout session to its paid status.
func (b *StripeBridge) RetrieveSession(ctx context.Context, sessionID string) (*models.SessionStatus, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing checkout session id")
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := checkout.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", sessionID, err)
	}
	return &models.SessionStatus{
		SessionID: sess.ID,
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}
