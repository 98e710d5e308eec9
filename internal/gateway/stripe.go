package gateway

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeGateway talks to Stripe for payment intents and verifies signed
// webhook deliveries. It implements PaymentGateway and WebhookVerifier.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateIntent(req IntentRequest) (*Intent, error) {
	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("orderId", req.OrderID)
	params.AddMetadata("customerEmail", req.CustomerEmail)
	params.AddMetadata("customerName", req.CustomerName)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment intent create error: %v", err)
	}

	return intentFromStripe(pi), nil
}

func (g *StripeGateway) GetIntent(id string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Get(id, nil)
	if err != nil {
		return nil, fmt.Errorf("payment intent fetch error: %v", err)
	}
	return intentFromStripe(pi), nil
}

// VerifyEvent checks the delivery signature and reduces the event to the
// reconciler's vocabulary. Unrecognized event kinds come back as
// WebhookIgnored so the handler can acknowledge them without acting.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %v", err)
	}

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("webhook payload parse error: %v", err)
		}

		eventType := WebhookPaymentSucceeded
		if event.Type == stripe.EventTypePaymentIntentPaymentFailed {
			eventType = WebhookPaymentFailed
		}

		return &WebhookEvent{
			ID:          event.ID,
			Type:        eventType,
			IntentID:    pi.ID,
			OrderID:     pi.Metadata["orderId"],
			AmountCents: pi.Amount,
		}, nil

	default:
		return &WebhookEvent{ID: event.ID, Type: WebhookIgnored}, nil
	}
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       IntentStatus(pi.Status),
		AmountCents:  pi.Amount,
	}
}
