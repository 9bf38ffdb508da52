package billing

import (
	"context"
	"errors"
	"testing"

	"pet-rescue-registry/internal/domain/users"
	"pet-rescue-registry/internal/platform/logger"
	"pet-rescue-registry/internal/ports/payments"
)

// -------------------------
// Stubs
// -------------------------

type usersStub struct {
	byID     map[string]users.User
	setPlans []string // uids que recibieron SetPlan
}

func newUsersStub() *usersStub { return &usersStub{byID: map[string]users.User{}} }

func (r *usersStub) Get(ctx context.Context, id string) (users.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return users.User{}, errors.New("stub: not found")
	}
	return u, nil
}

func (r *usersStub) Upsert(ctx context.Context, u users.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *usersStub) SetPlan(ctx context.Context, id string, plan users.Plan) error {
	u := r.byID[id]
	u.ID = id
	u.Plan = plan
	r.byID[id] = u
	r.setPlans = append(r.setPlans, id)
	return nil
}

func (r *usersStub) ListNotifyOptIn(ctx context.Context) ([]users.User, error) {
	return nil, nil
}

type gatewayStub struct {
	url       string
	lastInput payments.CheckoutInput

	event     payments.CheckoutEvent
	verifyErr error
}

func (g *gatewayStub) CreateCheckoutSession(ctx context.Context, in payments.CheckoutInput) (string, error) {
	g.lastInput = in
	return g.url, nil
}

func (g *gatewayStub) VerifyWebhook(payload []byte, signatureHeader string) (payments.CheckoutEvent, error) {
	if g.verifyErr != nil {
		return payments.CheckoutEvent{}, g.verifyErr
	}
	return g.event, nil
}

func newService(gw payments.Gateway, repo *usersStub, premiumPriceID string) *Service {
	quiet := logger.New(logger.Options{Level: logger.Error})
	return NewService(gw, users.NewService(repo), premiumPriceID, quiet)
}

// -------------------------
// CreateSession
// -------------------------

func TestService_CreateSession_NotConfigured(t *testing.T) {
	svc := newService(nil, newUsersStub(), "price_premium")

	_, err := svc.CreateSession(context.Background(), "uid-1", CreateSessionInput{
		PriceID:    "price_premium",
		SuccessURL: "https://app.example.com/ok",
		CancelURL:  "https://app.example.com/cancel",
	})
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestService_CreateSession_Validation(t *testing.T) {
	gw := &gatewayStub{url: "https://checkout.stripe.com/s/123"}
	svc := newService(gw, newUsersStub(), "price_premium")

	cases := []CreateSessionInput{
		{PriceID: "", SuccessURL: "https://x/ok", CancelURL: "https://x/no"},
		{PriceID: "price_1", SuccessURL: "", CancelURL: "https://x/no"},
		{PriceID: "price_1", SuccessURL: "https://x/ok", CancelURL: ""},
		{PriceID: "price_1", SuccessURL: "https://x/ok", CancelURL: "https://x/no", Mode: "setup"},
	}
	for _, in := range cases {
		if _, err := svc.CreateSession(context.Background(), "uid-1", in); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestService_CreateSession_DefaultsAndCorrelationMetadata(t *testing.T) {
	gw := &gatewayStub{url: "https://checkout.stripe.com/s/123"}
	svc := newService(gw, newUsersStub(), "price_premium")

	url, err := svc.CreateSession(context.Background(), "uid-1", CreateSessionInput{
		PriceID:    "price_premium",
		SuccessURL: "https://app.example.com/ok",
		CancelURL:  "https://app.example.com/cancel",
	})
	if err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}
	if url != gw.url {
		t.Fatalf("expected gateway url, got %q", url)
	}

	in := gw.lastInput
	if in.Quantity != 1 || in.Mode != "payment" {
		t.Fatalf("expected defaults quantity=1 mode=payment, got %+v", in)
	}
	// El webhook atribuye la compra con esta metadata.
	if in.Metadata["uid"] != "uid-1" || in.Metadata["priceId"] != "price_premium" {
		t.Fatalf("expected correlation metadata, got %v", in.Metadata)
	}
}

// -------------------------
// HandleWebhook
// -------------------------

func completedEvent(uid, priceID string) payments.CheckoutEvent {
	return payments.CheckoutEvent{
		Type:     "checkout.session.completed",
		Metadata: map[string]string{"uid": uid, "priceId": priceID},
	}
}

func TestService_HandleWebhook_BadSignature(t *testing.T) {
	gw := &gatewayStub{verifyErr: errors.New("signature mismatch")}
	svc := newService(gw, newUsersStub(), "price_premium")

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "t=1,v1=bad"); err != ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestService_HandleWebhook_UpgradesOnPremiumPrice(t *testing.T) {
	repo := newUsersStub()
	gw := &gatewayStub{event: completedEvent("uid-1", "price_premium")}
	svc := newService(gw, repo, "price_premium")

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook error: %v", err)
	}

	if repo.byID["uid-1"].Plan != users.PlanPremium {
		t.Fatalf("expected uid-1 upgraded to premium, got %+v", repo.byID["uid-1"])
	}
}

func TestService_HandleWebhook_IgnoresOtherPrice(t *testing.T) {
	repo := newUsersStub()
	gw := &gatewayStub{event: completedEvent("uid-1", "price_other")}
	svc := newService(gw, repo, "price_premium")

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook error: %v", err)
	}
	if len(repo.setPlans) != 0 {
		t.Fatalf("expected no plan change for other price, got %v", repo.setPlans)
	}
}

func TestService_HandleWebhook_IgnoresOtherEventTypes(t *testing.T) {
	repo := newUsersStub()
	gw := &gatewayStub{event: payments.CheckoutEvent{
		Type:     "invoice.paid",
		Metadata: map[string]string{"uid": "uid-1", "priceId": "price_premium"},
	}}
	svc := newService(gw, repo, "price_premium")

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook error: %v", err)
	}
	if len(repo.setPlans) != 0 {
		t.Fatalf("expected no plan change for other event type, got %v", repo.setPlans)
	}
}

func TestService_HandleWebhook_RejectsUnsafeUID(t *testing.T) {
	repo := newUsersStub()
	gw := &gatewayStub{event: completedEvent("../users/admin", "price_premium")}
	svc := newService(gw, repo, "price_premium")

	// Se reconoce el evento pero no se toca ningún plan.
	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook error: %v", err)
	}
	if len(repo.setPlans) != 0 {
		t.Fatalf("expected no plan change for unsafe uid, got %v", repo.setPlans)
	}
}

func TestIsSafeUID(t *testing.T) {
	cases := []struct {
		uid  string
		want bool
	}{
		{"abc123", true},
		{"Firebase_UID-01", true},
		{"", false},
		{"../users/admin", false},
		{"uid con espacios", false},
		{string(make([]byte, 129)), false},
	}
	for _, c := range cases {
		if got := isSafeUID(c.uid); got != c.want {
			t.Fatalf("isSafeUID(%q) = %v, want %v", c.uid, got, c.want)
		}
	}
}
