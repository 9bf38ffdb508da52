package rescue

import (
	"encoding/json"
	"net/http"
	"strings"

	"pet-rescue-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Nombres planos, compatibles con los endpoints que ya consume la SPA.
	r.Post("/notifyLost", notifyLostHandler(svc))
	r.Post("/onWaClick", onWaClickHandler(svc))
}

type notifyLostRequest struct {
	Microchip string `json:"microchip"`
	UA        string `json:"ua"`
}

type waClickRequest struct {
	Microchip string `json:"microchip"`
	Origin    string `json:"origin"`
	UA        string `json:"ua"`
}

func notifyLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req notifyLostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ua := req.UA
		if strings.TrimSpace(ua) == "" {
			ua = r.Header.Get("User-Agent")
		}

		_, err := svc.ReportLost(r.Context(), claims.UserID, ReportInput{
			Microchip: req.Microchip,
			IP:        r.RemoteAddr, // RealIP middleware ya lo normalizó
			UserAgent: ua,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "microchip missing", http.StatusBadRequest)
			case ErrPetNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "marked-lost"})
	}
}

func onWaClickHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req waClickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ua := req.UA
		if strings.TrimSpace(ua) == "" {
			ua = r.Header.Get("User-Agent")
		}

		// El log del clic es best-effort: la respuesta es ok pase lo que pase.
		svc.LogContactClick(r.Context(), claims.UserID, ClickInput{
			Microchip: req.Microchip,
			Origin:    req.Origin,
			UserAgent: ua,
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos;
// ver nota en pets/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
