package advisor

import (
	"encoding/json"
	"net/http"
	"strings"

	"pet-rescue-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/vetChat", vetChatHandler(svc))
	r.Post("/dietRecommendations", dietHandler(svc))
}

type vetChatRequest struct {
	Message string `json:"message"`
}

type dietRequest struct {
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Age     string `json:"age"`
}

func vetChatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req vetChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reply, err := svc.VetChat(r.Context(), claims.UserID, req.Message)
		if err != nil {
			writeAdvisorError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}

func dietHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req dietRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recs, err := svc.DietRecommendations(r.Context(), claims.UserID, DietInput{
			Species: req.Species,
			Breed:   req.Breed,
			Age:     req.Age,
		})
		if err != nil {
			writeAdvisorError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"recommendations": recs})
	}
}

func writeAdvisorError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotConfigured:
		http.Error(w, "ai not configured", http.StatusServiceUnavailable)
	case ErrNotPremium:
		http.Error(w, "premium only", http.StatusForbidden)
	default:
		// Fallos del proveedor se propagan como internos, sin retry.
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos;
// ver nota en pets/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
