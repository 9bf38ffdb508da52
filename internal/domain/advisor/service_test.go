package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pet-rescue-registry/internal/domain/users"
)

type usersStub struct {
	byID map[string]users.User
}

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
	return nil
}

func (r *usersStub) ListNotifyOptIn(ctx context.Context) ([]users.User, error) {
	return nil, nil
}

type completerStub struct {
	calls      int
	lastSystem string
	lastUser   string
	lastTemp   float32
	reply      string
	fail       error
}

func (c *completerStub) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	c.calls++
	c.lastSystem = system
	c.lastUser = user
	c.lastTemp = temperature
	if c.fail != nil {
		return "", c.fail
	}
	return c.reply, nil
}

func usersWithPlans() *usersStub {
	return &usersStub{byID: map[string]users.User{
		"premium-1": {ID: "premium-1", Plan: users.PlanPremium},
		"free-1":    {ID: "free-1", Plan: users.PlanFree},
	}}
}

func TestService_VetChat_NotConfigured(t *testing.T) {
	svc := NewService(nil, users.NewService(usersWithPlans()))

	if _, err := svc.VetChat(context.Background(), "premium-1", "hola"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestService_VetChat_GatesBeforeProviderCall(t *testing.T) {
	ai := &completerStub{reply: "consulta al veterinario"}
	svc := NewService(ai, users.NewService(usersWithPlans()))

	if _, err := svc.VetChat(context.Background(), "free-1", "hola"); err != ErrNotPremium {
		t.Fatalf("expected ErrNotPremium, got %v", err)
	}
	// Usuario desconocido = free
	if _, err := svc.VetChat(context.Background(), "ghost", "hola"); err != ErrNotPremium {
		t.Fatalf("expected ErrNotPremium for unknown uid, got %v", err)
	}
	// El gate corta ANTES de gastar en el proveedor.
	if ai.calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", ai.calls)
	}
}

func TestService_VetChat_PremiumGetsReply(t *testing.T) {
	ai := &completerStub{reply: "Llévalo al veterinario si persiste."}
	svc := NewService(ai, users.NewService(usersWithPlans()))

	reply, err := svc.VetChat(context.Background(), "premium-1", "mi perro estornuda")
	if err != nil {
		t.Fatalf("VetChat error: %v", err)
	}
	if reply != ai.reply {
		t.Fatalf("expected provider reply, got %q", reply)
	}
	if ai.lastSystem != vetSystemPrompt {
		t.Fatalf("expected vet system prompt, got %q", ai.lastSystem)
	}
	if ai.lastUser != "mi perro estornuda" {
		t.Fatalf("expected user message forwarded, got %q", ai.lastUser)
	}
	if ai.lastTemp != vetTemperature {
		t.Fatalf("expected temperature %v, got %v", vetTemperature, ai.lastTemp)
	}
}

func TestService_VetChat_EmptyMessageFallsBack(t *testing.T) {
	ai := &completerStub{reply: "ok"}
	svc := NewService(ai, users.NewService(usersWithPlans()))

	if _, err := svc.VetChat(context.Background(), "premium-1", "   "); err != nil {
		t.Fatalf("VetChat error: %v", err)
	}
	if ai.lastUser != defaultVetPrompt {
		t.Fatalf("expected default prompt, got %q", ai.lastUser)
	}
}

func TestService_DietRecommendations_DefaultsAndTemplate(t *testing.T) {
	ai := &completerStub{reply: "croquetas"}
	svc := NewService(ai, users.NewService(usersWithPlans()))

	if _, err := svc.DietRecommendations(context.Background(), "premium-1", DietInput{}); err != nil {
		t.Fatalf("DietRecommendations error: %v", err)
	}
	if ai.lastSystem != dietSystemPrompt {
		t.Fatalf("expected diet system prompt, got %q", ai.lastSystem)
	}
	if ai.lastTemp != dietTemperature {
		t.Fatalf("expected temperature %v, got %v", dietTemperature, ai.lastTemp)
	}
	// Defaults: perro mestizo de 3 años
	for _, want := range []string{"perro", "mestizo", "3 años"} {
		if !strings.Contains(ai.lastUser, want) {
			t.Fatalf("expected prompt to contain %q, got %q", want, ai.lastUser)
		}
	}

	if _, err := svc.DietRecommendations(context.Background(), "premium-1", DietInput{
		Species: "gato",
		Breed:   "siamés",
		Age:     "7",
	}); err != nil {
		t.Fatalf("DietRecommendations #2 error: %v", err)
	}
	for _, want := range []string{"gato", "siamés", "7 años"} {
		if !strings.Contains(ai.lastUser, want) {
			t.Fatalf("expected prompt to contain %q, got %q", want, ai.lastUser)
		}
	}
}

func TestService_DietRecommendations_RequiresPremium(t *testing.T) {
	ai := &completerStub{reply: "croquetas"}
	svc := NewService(ai, users.NewService(usersWithPlans()))

	if _, err := svc.DietRecommendations(context.Background(), "free-1", DietInput{}); err != ErrNotPremium {
		t.Fatalf("expected ErrNotPremium, got %v", err)
	}
	if ai.calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", ai.calls)
	}
}

func TestService_ProviderErrorPropagates(t *testing.T) {
	ai := &completerStub{fail: errors.New("upstream 500")}
	svc := NewService(ai, users.NewService(usersWithPlans()))

	if _, err := svc.VetChat(context.Background(), "premium-1", "hola"); err == nil {
		t.Fatalf("expected provider error to propagate")
	}
}
