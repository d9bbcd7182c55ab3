package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
)

const currency = "usd"

// StripeProvider implements service.PaymentProvider on Stripe hosted
// checkout sessions and signed webhooks.
type StripeProvider struct {
	webhookSecret string
	frontendURL   string
}

func NewStripeProvider(apiKey, webhookSecret, frontendURL string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
	}
}

var _ service.PaymentProvider = (*StripeProvider)(nil)

func (p *StripeProvider) CreateCheckoutIntent(ctx context.Context, order *domain.Order, customerEmail string, lines []service.CheckoutLineItem) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(line.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		CustomerEmail: stripe.String(customerEmail),
		SuccessURL:    stripe.String(p.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.frontendURL + "/checkout/cancel"),
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"order_id": strconv.FormatInt(order.ID, 10),
			},
		},
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

// VerifyWebhook checks the signature and parses the event. Only
// checkout.session.completed with a paid status maps to a confirmation;
// every other event type returns (nil, nil).
func (p *StripeProvider) VerifyWebhook(payload []byte, signatureHeader string) (*domain.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook signature: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, nil
	}

	orderID, err := strconv.ParseInt(sess.Metadata["order_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("checkout session %s has no usable order_id metadata: %w", sess.ID, err)
	}

	transactionID := sess.ID
	if sess.PaymentIntent != nil {
		transactionID = sess.PaymentIntent.ID
	}

	return &domain.WebhookEvent{
		OrderID:         orderID,
		AmountPaidCents: sess.AmountTotal,
		PaymentMethod:   "stripe",
		TransactionID:   transactionID,
	}, nil
}
