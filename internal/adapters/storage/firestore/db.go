// Package firestore implementa los repositorios sobre Cloud Firestore,
// el backend de producción (mismo layout de colecciones que usaba la SPA).
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fs "cloud.google.com/go/firestore"
)

const (
	colUsers      = "users"
	colPets       = "pets"
	colClinics    = "clinics"
	colLostAlerts = "lostAlerts"
	colWaClicks   = "waClicks"

	// Subcolección de cada mascota.
	subLostReports = "lostReports"
)

var ErrNotConfigured = errors.New("firestore project not configured")

// Open crea el cliente de Firestore para el proyecto dado. Las credenciales
// salen del entorno, igual que en el verifier de auth.
func Open(ctx context.Context, projectID string) (*fs.Client, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrNotConfigured
	}
	client, err := fs.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}
