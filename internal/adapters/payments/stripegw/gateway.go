package stripegw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"pet-rescue-registry/internal/ports/payments"
)

var (
	ErrNotConfigured = errors.New("stripe client not configured")
	ErrBadSignature  = errors.New("stripe signature verification failed")
)

type Config struct {
	SecretKey     string
	WebhookSecret string
}

// Gateway implementa payments.Gateway sobre la API de Stripe.
// Cliente propio (no el global del SDK) para poder inyectar stubs en tests.
type Gateway struct {
	api           *client.API
	webhookSecret string
}

func NewGateway(cfg Config) (*Gateway, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, ErrNotConfigured
	}

	api := &client.API{}
	api.Init(key, nil)

	return &Gateway{
		api:           api,
		webhookSecret: strings.TrimSpace(cfg.WebhookSecret),
	}, nil
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, in payments.CheckoutInput) (string, error) {
	if g == nil || g.api == nil {
		return "", ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(in.Mode),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(in.Quantity),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

func (g *Gateway) VerifyWebhook(payload []byte, signatureHeader string) (payments.CheckoutEvent, error) {
	if g == nil || g.webhookSecret == "" {
		return payments.CheckoutEvent{}, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return payments.CheckoutEvent{}, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	out := payments.CheckoutEvent{Type: string(event.Type)}

	// Solo necesitamos la metadata de la sesión (uid + priceId de correlación).
	var session struct {
		Metadata map[string]string `json:"metadata"`
	}
	if len(event.Data.Raw) > 0 {
		if err := json.Unmarshal(event.Data.Raw, &session); err == nil {
			out.Metadata = session.Metadata
		}
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}

	return out, nil
}
