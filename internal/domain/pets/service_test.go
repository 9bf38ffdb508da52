package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) FindByMicrochip(ctx context.Context, microchip string) (Pet, error) {
	for _, p := range r.byID {
		if p.Microchip == microchip {
			return p, nil
		}
	}
	return Pet{}, errRepoNotFound
}

func (r *testRepo) MarkLost(ctx context.Context, id string, at time.Time, by string) error {
	p, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	p.Lost = true
	p.LastLostAt = &at
	p.LastLostBy = by
	r.byID[id] = p
	return nil
}

func (r *testRepo) SetLastKnownLocation(ctx context.Context, id string, lat, lng float64) error {
	p, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	p.LastKnownLat = &lat
	p.LastKnownLng = &lng
	r.byID[id] = p
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RejectsDuplicateMicrochip(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Species:   "dog",
		Microchip: "CHIP-1",
	})
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	// Otro tutor, mismo chip
	_, err = svc.Create(context.Background(), "owner-2", CreateInput{
		Name:      "Copia",
		Species:   "dog",
		Microchip: "CHIP-1",
	})
	if err != ErrMicrochipTaken {
		t.Fatalf("expected ErrMicrochipTaken, got %v", err)
	}
}

func TestService_Create_RequiresNameAndMicrochip(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []CreateInput{
		{Name: "", Microchip: "CHIP-1"},
		{Name: "Milo", Microchip: ""},
		{Name: "Milo", Microchip: "   "},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestService_UpdateProfile_OwnerOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Microchip: "CHIP-1",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newName := "Milo Updated"
	if _, err := svc.UpdateProfile(context.Background(), p.ID, "intruder", UpdateProfileInput{Name: &newName}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), p.ID, "owner-1", UpdateProfileInput{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile by owner error: %v", err)
	}
	if updated.Name != "Milo Updated" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	// Campos no enviados no se tocan
	if updated.Microchip != "CHIP-1" {
		t.Fatalf("expected microchip untouched, got %q", updated.Microchip)
	}
}

func TestService_AddVaccine_DefaultsStatusAndValidatesDate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Microchip: "CHIP-1",
	})

	rec, err := svc.AddVaccine(context.Background(), p.ID, "owner-1", AddRecordInput{
		Name: "Antirrábica",
		Date: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("AddVaccine error: %v", err)
	}
	if rec.Status != StatusScheduled {
		t.Fatalf("expected default status programada, got %s", rec.Status)
	}

	// Fecha rota => 400
	if _, err := svc.AddVaccine(context.Background(), p.ID, "owner-1", AddRecordInput{
		Name: "Antirrábica",
		Date: "15/01/2026",
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}

	// Status desconocido => 400
	if _, err := svc.AddVaccine(context.Background(), p.ID, "owner-1", AddRecordInput{
		Name:   "Antirrábica",
		Date:   "2026-01-15",
		Status: "pendiente",
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}

	// No-owner no puede agregar
	if _, err := svc.AddDeworming(context.Background(), p.ID, "intruder", AddRecordInput{
		Name: "Desparasitante",
		Date: "2026-01-15",
	}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_AddRecords_AppendToSeparateArrays(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Microchip: "CHIP-1",
	})

	_, _ = svc.AddVaccine(context.Background(), p.ID, "owner-1", AddRecordInput{Name: "V1", Date: "2026-01-15"})
	_, _ = svc.AddVaccine(context.Background(), p.ID, "owner-1", AddRecordInput{Name: "V2", Date: "2026-02-15"})
	_, _ = svc.AddDeworming(context.Background(), p.ID, "owner-1", AddRecordInput{Name: "D1", Date: "2026-01-20"})

	got, err := svc.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(got.Vaccines) != 2 || len(got.Deworm) != 1 {
		t.Fatalf("expected 2 vaccines + 1 deworming, got %d + %d", len(got.Vaccines), len(got.Deworm))
	}
}

func TestService_MarkLost_UsesInjectedClock(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Milo",
		Microchip: "CHIP-1",
	})

	at, err := svc.MarkLost(context.Background(), p.ID, "reporter-1")
	if err != nil {
		t.Fatalf("MarkLost error: %v", err)
	}
	if !at.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, at)
	}

	got, _ := svc.GetByID(context.Background(), p.ID)
	if !got.Lost || got.LastLostBy != "reporter-1" {
		t.Fatalf("expected pet marked lost by reporter-1, got %+v", got)
	}
}

func TestService_FindByMicrochip_EmptyChip(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.FindByMicrochip(context.Background(), "  "); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.FindByMicrochip(context.Background(), "NOPE"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
