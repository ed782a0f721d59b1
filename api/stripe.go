package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"venues/entities"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// StripeProvider creates and retrieves hosted checkout sessions.
type StripeProvider struct {
	successURL string
	cancelURL  string
}

func NewStripeProvider(secretKey, successURL, cancelURL string, timeout time.Duration) StripeProvider {
	if secretKey == "" {
		panic("NewStripeProvider: secret key is empty")
	}

	stripe.Key = secretKey
	stripe.SetHTTPClient(&http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})

	return StripeProvider{
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (p StripeProvider) CreateSession(ctx context.Context, request entities.CheckoutSessionRequest) (entities.CheckoutSession, error) {
	unitAmount := request.UnitPrice.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(request.UnitPrice.Currency),
					UnitAmount: stripe.Int64(unitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(request.Description),
					},
				},
				Quantity: stripe.Int64(request.Quantity),
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		Metadata:   request.Metadata,
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return entities.CheckoutSession{}, fmt.Errorf("could not create checkout session: %w", err)
	}

	return entities.CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		Metadata: sess.Metadata,
	}, nil
}

func (p StripeProvider) GetSession(ctx context.Context, sessionID string) (entities.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return entities.CheckoutSession{}, fmt.Errorf("could not get checkout session %s: %w", sessionID, err)
	}

	result := entities.CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		result.TransactionID = sess.PaymentIntent.ID
	}

	return result, nil
}
