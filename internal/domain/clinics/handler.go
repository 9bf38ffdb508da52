package clinics

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-rescue-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clinics", func(cr chi.Router) {
		cr.Post("/", registerClinicHandler(svc))
		cr.Get("/", listClinicsHandler(svc))
	})
}

type registerClinicRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email string  `json:"email"`
	State string  `json:"state"`
	City  string  `json:"city"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type clinicResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func registerClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerClinicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Register(r.Context(), claims.UserID, RegisterInput{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
			State: req.State,
			City:  req.City,
			Lat:   req.Lat,
			Lng:   req.Lng,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toClinicResponse(c))
	}
}

func listClinicsHandler(svc *Service) http.HandlerFunc {
	// Directorio público: cualquiera puede ver las clínicas.
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]clinicResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClinicResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toClinicResponse(c Clinic) clinicResponse {
	return clinicResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		State:     c.State,
		City:      c.City,
		Lat:       c.Lat,
		Lng:       c.Lng,
		Verified:  c.Verified,
		CreatedAt: c.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos;
// ver nota en pets/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
