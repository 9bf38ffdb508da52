package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-rescue-registry/internal/domain/users"
	"pet-rescue-registry/internal/platform/logger"
	"pet-rescue-registry/internal/ports/payments"
)

var (
	ErrNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidInput  = errors.New("missing required field")
	ErrBadSignature  = errors.New("invalid webhook signature")
)

const eventCheckoutCompleted = "checkout.session.completed"

type Service struct {
	gateway payments.Gateway // nil = Stripe no configurado
	users   *users.Service

	premiumPriceID string

	log logger.Logger
	now func() time.Time
}

func NewService(gateway payments.Gateway, usersSvc *users.Service, premiumPriceID string, log logger.Logger) *Service {
	return &Service{
		gateway:        gateway,
		users:          usersSvc,
		premiumPriceID: strings.TrimSpace(premiumPriceID),
		log:            log,
		now:            time.Now,
	}
}

type CreateSessionInput struct {
	PriceID    string
	Quantity   int64
	Mode       string
	SuccessURL string
	CancelURL  string
}

// CreateSession arma una sesión de checkout hospedada y devuelve su URL.
// El uid viaja en metadata junto con el priceId para que el webhook pueda
// atribuir la compra después (token de correlación opaco).
func (s *Service) CreateSession(ctx context.Context, uid string, in CreateSessionInput) (string, error) {
	if s.gateway == nil {
		return "", ErrNotConfigured
	}

	priceID := strings.TrimSpace(in.PriceID)
	successURL := strings.TrimSpace(in.SuccessURL)
	cancelURL := strings.TrimSpace(in.CancelURL)
	if priceID == "" || successURL == "" || cancelURL == "" {
		return "", ErrInvalidInput
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	mode := strings.TrimSpace(in.Mode)
	if mode == "" {
		mode = "payment"
	}
	if mode != "payment" && mode != "subscription" {
		return "", ErrInvalidInput
	}

	return s.gateway.CreateCheckoutSession(ctx, payments.CheckoutInput{
		PriceID:    priceID,
		Quantity:   quantity,
		Mode:       mode,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata: map[string]string{
			"uid":     uid,
			"priceId": priceID,
		},
	})
}

// HandleWebhook verifica la firma sobre el body crudo y, si el evento es un
// checkout completado del precio premium, sube el plan del uid tagueado.
// Cualquier otro evento se reconoce sin efecto.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if s.gateway == nil {
		return ErrNotConfigured
	}

	ev, err := s.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return ErrBadSignature
	}

	if ev.Type != eventCheckoutCompleted {
		return nil
	}

	uid := strings.TrimSpace(ev.Metadata["uid"])
	priceID := strings.TrimSpace(ev.Metadata["priceId"])

	// El uid vuelve de un sistema externo: validar formato antes de usarlo
	// como key de documento.
	if !isSafeUID(uid) {
		s.log.Warn("webhook: invalid uid in metadata", map[string]any{"uid": uid})
		return nil
	}
	if priceID == "" || s.premiumPriceID == "" || priceID != s.premiumPriceID {
		return nil
	}

	// El write puede fallar; igual respondemos received al gateway (él
	// reintenta la entrega si quiere).
	if err := s.users.SetPlan(ctx, uid, users.PlanPremium); err != nil {
		s.log.Error("webhook: set plan failed", map[string]any{"uid": uid, "err": err.Error()})
	}
	return nil
}

// isSafeUID acepta el charset típico de uids del proveedor de identidad.
func isSafeUID(uid string) bool {
	if len(uid) == 0 || len(uid) > 128 {
		return false
	}
	for i := 0; i < len(uid); i++ {
		c := uid[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' {
			continue
		}
		return false
	}
	return true
}
