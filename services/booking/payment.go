package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"rentnest/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StatusSucceeded is the only processor status treated as payment success.
const StatusSucceeded = "succeeded"

// PaymentProcessor abstracts the card-payment processor. CreateIntent
// reserves a charge and yields the client secret the payment dialog needs;
// ConfirmPayment captures it. A decline is reported in the confirmation
// result, not as an error; errors mean the call itself failed.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*models.PaymentIntentRef, error)
	ConfirmPayment(ctx context.Context, intentID, paymentMethodID string) (*models.PaymentConfirmation, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// StripeProcessor implements PaymentProcessor on the Stripe API.
type StripeProcessor struct {
	logger *zap.Logger
}

// NewStripeProcessor returns a Stripe-backed payment processor. The global
// stripe.Key must already be set (done in main from config).
func NewStripeProcessor(logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{logger: logger}
}

// toCents converts a decimal amount to the smallest currency unit.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent creates a Stripe payment intent for the given amount.
func (p *StripeProcessor) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*models.PaymentIntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(toCents(amount)),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	p.logger.Info("Created payment intent",
		zap.String("intentID", pi.ID),
		zap.Int64("amountCents", pi.Amount),
		zap.String("currency", string(pi.Currency)))

	return &models.PaymentIntentRef{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// ConfirmPayment confirms a payment intent with the given payment method.
// Card declines come back as a confirmation with the processor's message.
func (p *StripeProcessor) ConfirmPayment(ctx context.Context, intentID, paymentMethodID string) (*models.PaymentConfirmation, error) {
	params := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(paymentMethodID),
	}

	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			p.logger.Warn("Card declined",
				zap.String("intentID", intentID),
				zap.String("declineMessage", stripeErr.Msg))
			return &models.PaymentConfirmation{
				PaymentIntentID: intentID,
				Status:          "declined",
				Message:         stripeErr.Msg,
			}, nil
		}
		return nil, fmt.Errorf("stripe: failed to confirm payment intent %s: %w", intentID, err)
	}

	return &models.PaymentConfirmation{
		PaymentIntentID: pi.ID,
		Status:          string(pi.Status),
	}, nil
}

// CancelIntent voids an unconfirmed payment intent.
func (p *StripeProcessor) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{
		Params: stripe.Params{Context: ctx},
	}
	if _, err := paymentintent.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: failed to cancel payment intent %s: %w", intentID, err)
	}
	return nil
}
