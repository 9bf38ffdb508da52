package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Get(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errors.New("repo: not found")
	}
	return u, nil
}

func (r *testRepo) Upsert(ctx context.Context, u User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) SetPlan(ctx context.Context, id string, plan Plan) error {
	u, ok := r.byID[id]
	if !ok {
		u = User{ID: id}
	}
	u.Plan = plan
	r.byID[id] = u
	return nil
}

func (r *testRepo) ListNotifyOptIn(ctx context.Context) ([]User, error) {
	out := make([]User, 0)
	for _, u := range r.byID {
		if u.Notify {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestService_Ensure_CreatesWithFreePlan(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.Ensure(context.Background(), "uid-1", "milo@example.com")
	if err != nil {
		t.Fatalf("Ensure error: %v", err)
	}
	if u.Plan != PlanFree {
		t.Fatalf("expected free plan on first touch, got %s", u.Plan)
	}
	if u.CreatedAt != now {
		t.Fatalf("expected CreatedAt from clock")
	}

	// Segunda llamada no pisa nada
	repo.byID["uid-1"] = User{ID: "uid-1", Email: "milo@example.com", Plan: PlanPremium, CreatedAt: now, UpdatedAt: now}
	u2, err := svc.Ensure(context.Background(), "uid-1", "otro@example.com")
	if err != nil {
		t.Fatalf("Ensure #2 error: %v", err)
	}
	if u2.Plan != PlanPremium || u2.Email != "milo@example.com" {
		t.Fatalf("expected existing doc untouched, got %+v", u2)
	}
}

func TestService_IsPremium_AbsentDocIsFree(t *testing.T) {
	svc := NewService(newTestRepo())

	premium, err := svc.IsPremium(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("IsPremium error: %v", err)
	}
	if premium {
		t.Fatalf("expected absent doc = not premium")
	}
}

func TestService_SetPlan_ValidatesPlan(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if err := svc.SetPlan(context.Background(), "uid-1", Plan("gold")); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown plan, got %v", err)
	}
	if err := svc.SetPlan(context.Background(), "", PlanPremium); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty uid, got %v", err)
	}

	if err := svc.SetPlan(context.Background(), "uid-1", PlanPremium); err != nil {
		t.Fatalf("SetPlan error: %v", err)
	}
	premium, _ := svc.IsPremium(context.Background(), "uid-1")
	if !premium {
		t.Fatalf("expected premium after SetPlan")
	}
}

func TestService_UpdateProfile_PatchesOnlySentFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	phone := "+51 999 888 777"
	u, err := svc.UpdateProfile(context.Background(), "uid-1", UpdateProfileInput{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if u.Phone != phone || u.Notify {
		t.Fatalf("expected phone set and notify untouched, got %+v", u)
	}

	notify := true
	u, err = svc.UpdateProfile(context.Background(), "uid-1", UpdateProfileInput{Notify: &notify})
	if err != nil {
		t.Fatalf("UpdateProfile #2 error: %v", err)
	}
	if u.Phone != phone || !u.Notify {
		t.Fatalf("expected notify set and phone kept, got %+v", u)
	}
}
