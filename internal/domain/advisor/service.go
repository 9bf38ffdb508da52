package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-rescue-registry/internal/domain/users"
	"pet-rescue-registry/internal/ports/ai"
)

var (
	ErrNotConfigured = errors.New("ai provider not configured")
	ErrNotPremium    = errors.New("premium plan required")
)

const (
	vetSystemPrompt  = "Eres un veterinario virtual. Responde en español con consejos prudentes."
	dietSystemPrompt = "Eres un nutricionista de mascotas. Responde en español."

	defaultVetPrompt = "Consejo general de salud para mascotas"

	vetTemperature  = 0.3
	dietTemperature = 0.4
)

type Service struct {
	completer ai.Completer // nil = proveedor no configurado
	users     *users.Service
}

func NewService(completer ai.Completer, usersSvc *users.Service) *Service {
	return &Service{
		completer: completer,
		users:     usersSvc,
	}
}

// gate corta antes de cualquier llamada al proveedor: primero configuración,
// después plan. El orden importa — la llamada externa cuesta plata.
func (s *Service) gate(ctx context.Context, uid string) error {
	if s.completer == nil {
		return ErrNotConfigured
	}
	premium, err := s.users.IsPremium(ctx, uid)
	if err != nil {
		return err
	}
	if !premium {
		return ErrNotPremium
	}
	return nil
}

// VetChat manda el mensaje del usuario al veterinario virtual.
func (s *Service) VetChat(ctx context.Context, uid, message string) (string, error) {
	if err := s.gate(ctx, uid); err != nil {
		return "", err
	}

	prompt := strings.TrimSpace(message)
	if prompt == "" {
		prompt = defaultVetPrompt
	}

	return s.completer.Complete(ctx, vetSystemPrompt, prompt, vetTemperature)
}

type DietInput struct {
	Species string
	Breed   string
	Age     string
}

// DietRecommendations arma el prompt templado con los datos de la mascota.
func (s *Service) DietRecommendations(ctx context.Context, uid string, in DietInput) (string, error) {
	if err := s.gate(ctx, uid); err != nil {
		return "", err
	}

	species := strings.TrimSpace(in.Species)
	if species == "" {
		species = "perro"
	}
	breed := strings.TrimSpace(in.Breed)
	if breed == "" {
		breed = "mestizo"
	}
	age := strings.TrimSpace(in.Age)
	if age == "" {
		age = "3"
	}

	prompt := fmt.Sprintf(
		"Recomiéndame dieta, ejercicio y cuidados para un %s de raza %s y %s años.",
		species, breed, age,
	)

	return s.completer.Complete(ctx, dietSystemPrompt, prompt, dietTemperature)
}
