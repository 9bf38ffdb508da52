package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-rescue-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Pets (owner)
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))

		// Carnet: vacunas y desparasitaciones embebidas en el doc
		pr.Post("/{petID}/vaccines", addRecordHandler(svc, true))
		pr.Get("/{petID}/vaccines", listRecordsHandler(svc, true))
		pr.Post("/{petID}/deworming", addRecordHandler(svc, false))
		pr.Get("/{petID}/deworming", listRecordsHandler(svc, false))
	})

	// Perfil público de rescate (lo abre quien escanea el QR; sin auth)
	r.Get("/rescue/{microchip}", rescueProfileHandler(svc))

	// Placeholder del generador de QR (la plaquita se imprime aparte)
	r.Post("/generateQr", generateQrHandler())
}

type createPetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Age       string `json:"age"`
	Microchip string `json:"microchip"`
	PhotoURL  string `json:"photoUrl"`
	WhatsApp  string `json:"whatsapp"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"name"`
	Species  *string `json:"species"`
	Breed    *string `json:"breed"`
	Age      *string `json:"age"`
	PhotoURL *string `json:"photoUrl"`
	WhatsApp *string `json:"whatsapp"`
}

type careRecordRequest struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Batch  string `json:"batch"`
	Status string `json:"status"`
}

type careRecordResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Batch  string `json:"batch,omitempty"`
	Status string `json:"status"`
}

type petResponse struct {
	ID          string               `json:"id"`
	OwnerUserID string               `json:"owner_user_id"`
	Name        string               `json:"name"`
	Species     string               `json:"species"`
	Breed       string               `json:"breed"`
	Age         string               `json:"age,omitempty"`
	Microchip   string               `json:"microchip"`
	PhotoURL    string               `json:"photoUrl,omitempty"`
	WhatsApp    string               `json:"whatsapp,omitempty"`
	Lost        bool                 `json:"lost"`
	LastLostAt  *time.Time           `json:"last_lost_at,omitempty"`
	Vaccines    []careRecordResponse `json:"vaccines"`
	Deworm      []careRecordResponse `json:"deworm"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// rescueResponse es el recorte público: lo mínimo para identificar a la
// mascota y contactar al tutor, nada del carnet ni del owner.
type rescueResponse struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed,omitempty"`
	Microchip string `json:"microchip"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Lost      bool   `json:"lost"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Age:       req.Age,
			Microchip: req.Microchip,
			PhotoURL:  req.PhotoURL,
			WhatsApp:  req.WhatsApp,
		})
		if err != nil {
			switch err {
			case ErrMicrochipTaken:
				http.Error(w, err.Error(), http.StatusConflict)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	// Owner-only: el perfil completo incluye carnet y estado de pérdida.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateProfileInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Age:      req.Age,
			PhotoURL: req.PhotoURL,
			WhatsApp: req.WhatsApp,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func addRecordHandler(svc *Service, vaccine bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req careRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := AddRecordInput{
			Name:   req.Name,
			Date:   req.Date,
			Batch:  req.Batch,
			Status: req.Status,
		}

		var (
			rec CareRecord
			err error
		)
		if vaccine {
			rec, err = svc.AddVaccine(r.Context(), chi.URLParam(r, "petID"), claims.UserID, in)
		} else {
			rec, err = svc.AddDeworming(r.Context(), chi.URLParam(r, "petID"), claims.UserID, in)
		}
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toCareRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service, vaccine bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		records := p.Vaccines
		if !vaccine {
			records = p.Deworm
		}

		out := make([]careRecordResponse, 0, len(records))
		for _, rec := range records {
			out = append(out, toCareRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func rescueProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.FindByMicrochip(r.Context(), chi.URLParam(r, "microchip"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, rescueResponse{
			Name:      p.Name,
			Species:   p.Species,
			Breed:     p.Breed,
			Microchip: p.Microchip,
			PhotoURL:  p.PhotoURL,
			WhatsApp:  p.WhatsApp,
			Lost:      p.Lost,
		})
	}
}

func generateQrHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "QR generado (placeholder)"})
	}
}

func toCareRecordResponse(rec CareRecord) careRecordResponse {
	return careRecordResponse{
		ID:     rec.ID,
		Name:   rec.Name,
		Date:   rec.Date,
		Batch:  rec.Batch,
		Status: string(rec.Status),
	}
}

func toPetResponse(p Pet) petResponse {
	vaccines := make([]careRecordResponse, 0, len(p.Vaccines))
	for _, rec := range p.Vaccines {
		vaccines = append(vaccines, toCareRecordResponse(rec))
	}
	deworm := make([]careRecordResponse, 0, len(p.Deworm))
	for _, rec := range p.Deworm {
		deworm = append(deworm, toCareRecordResponse(rec))
	}

	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Microchip:   p.Microchip,
		PhotoURL:    p.PhotoURL,
		WhatsApp:    p.WhatsApp,
		Lost:        p.Lost,
		LastLostAt:  p.LastLostAt,
		Vaccines:    vaccines,
		Deworm:      deworm,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
