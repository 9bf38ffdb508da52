package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-rescue-registry/internal/domain/rescue"
)

type ReportsRepo struct {
	mu sync.RWMutex
	// Reportes anidados bajo su mascota, como subcolección.
	byPet map[string][]rescue.LostReport
}

func NewReportsRepo() *ReportsRepo {
	return &ReportsRepo{
		byPet: make(map[string][]rescue.LostReport),
	}
}

func (r *ReportsRepo) Create(ctx context.Context, rep rescue.LostReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rep.ID) == "" || strings.TrimSpace(rep.PetID) == "" {
		return errors.New("report id and pet id required")
	}
	r.byPet[rep.PetID] = append(r.byPet[rep.PetID], rep)
	return nil
}

func (r *ReportsRepo) AttachLocation(ctx context.Context, petID, reportID string, loc rescue.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reports := r.byPet[petID]
	for i := range reports {
		if reports[i].ID == reportID {
			l := loc
			reports[i].Location = &l
			return nil
		}
	}
	return ErrNotFound
}

// ReportsForPet existe para tests y debugging; no lo consume ningún handler.
func (r *ReportsRepo) ReportsForPet(petID string) []rescue.LostReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rescue.LostReport, len(r.byPet[petID]))
	copy(out, r.byPet[petID])
	return out
}

type AlertsRepo struct {
	mu  sync.RWMutex
	all []rescue.LostAlert
}

func NewAlertsRepo() *AlertsRepo {
	return &AlertsRepo{}
}

func (r *AlertsRepo) Create(ctx context.Context, a rescue.LostAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("alert id required")
	}
	r.all = append(r.all, a)
	return nil
}

// Alerts devuelve una copia de lo acumulado (para tests).
func (r *AlertsRepo) Alerts() []rescue.LostAlert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rescue.LostAlert, len(r.all))
	copy(out, r.all)
	return out
}

type ClicksRepo struct {
	mu  sync.RWMutex
	all []rescue.WaClick
}

func NewClicksRepo() *ClicksRepo {
	return &ClicksRepo{}
}

func (r *ClicksRepo) Create(ctx context.Context, c rescue.WaClick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("click id required")
	}
	r.all = append(r.all, c)
	return nil
}

// Clicks devuelve una copia de lo acumulado (para tests).
func (r *ClicksRepo) Clicks() []rescue.WaClick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rescue.WaClick, len(r.all))
	copy(out, r.all)
	return out
}
