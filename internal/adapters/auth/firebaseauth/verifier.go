package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"pet-rescue-registry/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("firebase auth not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("invalid id token")
)

type Config struct {
	// ProjectID del proyecto Firebase. Las credenciales salen del entorno
	// (GOOGLE_APPLICATION_CREDENTIALS o metadata del runtime).
	ProjectID string
}

// Verifier implementa auth.AuthVerifier contra el proveedor de identidad
// administrado (verifyIdToken del admin SDK).
type Verifier struct {
	client *fbauth.Client
}

func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, ErrNotConfigured
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	return &Verifier{client: client}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims := auth.Claims{UserID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		claims.Email = strings.TrimSpace(email)
	}
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("id token missing uid")
	}

	return claims, nil
}
