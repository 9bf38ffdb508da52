package billing

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"pet-rescue-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// webhookBodyLimit acota el body crudo del webhook.
const webhookBodyLimit = 1 << 20 // 1MB

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/createCheckoutSession", createCheckoutSessionHandler(svc))
	r.Post("/stripeWebhook", stripeWebhookHandler(svc))
}

type createSessionRequest struct {
	PriceID    string `json:"priceId"`
	Quantity   int64  `json:"quantity"`
	Mode       string `json:"mode"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func createCheckoutSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		url, err := svc.CreateSession(r.Context(), claims.UserID, CreateSessionInput{
			PriceID:    req.PriceID,
			Quantity:   req.Quantity,
			Mode:       req.Mode,
			SuccessURL: req.SuccessURL,
			CancelURL:  req.CancelURL,
		})
		if err != nil {
			switch err {
			case ErrNotConfigured:
				http.Error(w, "stripe not configured", http.StatusServiceUnavailable)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func stripeWebhookHandler(svc *Service) http.HandlerFunc {
	// Sin auth previa: la verificación de firma ES la autenticación.
	// El body tiene que llegar crudo, byte a byte, o la firma no cierra.
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		err = svc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			switch err {
			case ErrBadSignature:
				http.Error(w, "invalid signature", http.StatusBadRequest)
			case ErrNotConfigured:
				http.Error(w, "stripe not configured", http.StatusInternalServerError)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos;
// ver nota en pets/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
