package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("pet not found")
	ErrMicrochipTaken = errors.New("microchip already registered")
	ErrForbidden      = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Age       string
	Microchip string
	PhotoURL  string
	WhatsApp  string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	chip := strings.TrimSpace(in.Microchip)
	if chip == "" {
		return Pet{}, ErrInvalidInput
	}

	// Unicidad del microchip al crear. El lookup público sigue siendo
	// "primera coincidencia" para tolerar datos viejos duplicados.
	if _, err := s.repo.FindByMicrochip(ctx, chip); err == nil {
		return Pet{}, ErrMicrochipTaken
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         strings.TrimSpace(in.Age),
		Microchip:   chip,
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		WhatsApp:    strings.TrimSpace(in.WhatsApp),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) FindByMicrochip(ctx context.Context, microchip string) (Pet, error) {
	microchip = strings.TrimSpace(microchip)
	if microchip == "" {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.FindByMicrochip(ctx, microchip)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Species  *string
	Breed    *string
	Age      *string
	PhotoURL *string
	WhatsApp *string
}

func (s *Service) UpdateProfile(ctx context.Context, petID, callerUserID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if p.OwnerUserID != callerUserID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = strings.TrimSpace(*in.Age)
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.WhatsApp != nil {
		p.WhatsApp = strings.TrimSpace(*in.WhatsApp)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type AddRecordInput struct {
	Name   string
	Date   string // YYYY-MM-DD
	Batch  string
	Status string
}

// AddVaccine agrega una vacuna al array embebido del doc (owner-only).
func (s *Service) AddVaccine(ctx context.Context, petID, callerUserID string, in AddRecordInput) (CareRecord, error) {
	return s.addRecord(ctx, petID, callerUserID, in, true)
}

// AddDeworming agrega una desparasitación (owner-only).
func (s *Service) AddDeworming(ctx context.Context, petID, callerUserID string, in AddRecordInput) (CareRecord, error) {
	return s.addRecord(ctx, petID, callerUserID, in, false)
}

func (s *Service) addRecord(ctx context.Context, petID, callerUserID string, in AddRecordInput, vaccine bool) (CareRecord, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Date) == "" {
		return CareRecord{}, ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date)); err != nil {
		return CareRecord{}, ErrInvalidInput
	}

	status := RecordStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusScheduled
	}
	if status != StatusScheduled && status != StatusApplied {
		return CareRecord{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return CareRecord{}, ErrNotFound
	}
	if p.OwnerUserID != callerUserID {
		return CareRecord{}, ErrForbidden
	}

	rec := CareRecord{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(in.Name),
		Date:   strings.TrimSpace(in.Date),
		Batch:  strings.TrimSpace(in.Batch),
		Status: status,
	}

	if vaccine {
		p.Vaccines = append(p.Vaccines, rec)
	} else {
		p.Deworm = append(p.Deworm, rec)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return CareRecord{}, err
	}
	return rec, nil
}

// MarkLost delega el merge del flag al repo (write atómico por documento).
func (s *Service) MarkLost(ctx context.Context, petID, reporterUserID string) (time.Time, error) {
	at := s.now()
	if err := s.repo.MarkLost(ctx, petID, at, reporterUserID); err != nil {
		return time.Time{}, err
	}
	return at, nil
}

func (s *Service) SetLastKnownLocation(ctx context.Context, petID string, lat, lng float64) error {
	return s.repo.SetLastKnownLocation(ctx, petID, lat, lng)
}

// OwnerOf expone el ownerUserID de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> rescue).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
