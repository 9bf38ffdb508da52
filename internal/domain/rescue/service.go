package rescue

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"pet-rescue-registry/internal/domain/clinics"
	"pet-rescue-registry/internal/domain/pets"
	"pet-rescue-registry/internal/domain/users"
	"pet-rescue-registry/internal/platform/logger"
	"pet-rescue-registry/internal/ports/geo"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

var (
	ErrInvalidInput = errors.New("microchip missing")
	ErrPetNotFound  = errors.New("pet not found")
)

// alertRadiusKm es el radio de fan-out a clínicas alrededor de la última
// ubicación conocida de la mascota.
const alertRadiusKm = 50.0

type Service struct {
	pets    *pets.Service
	users   *users.Service
	clinics *clinics.Service

	reports ReportsRepository
	alerts  AlertsRepository
	clicks  ClicksRepository

	// locator puede ser nil: la geolocalización es opcional y best-effort.
	locator geo.Locator

	log logger.Logger
	now func() time.Time
}

func NewService(
	petsSvc *pets.Service,
	usersSvc *users.Service,
	clinicsSvc *clinics.Service,
	reports ReportsRepository,
	alerts AlertsRepository,
	clicks ClicksRepository,
	locator geo.Locator,
	log logger.Logger,
) *Service {
	return &Service{
		pets:    petsSvc,
		users:   usersSvc,
		clinics: clinicsSvc,
		reports: reports,
		alerts:  alerts,
		clicks:  clicks,
		locator: locator,
		log:     log,
		now:     time.Now,
	}
}

type ReportInput struct {
	Microchip string
	IP        string
	UserAgent string
}

// ReportLost es el flujo lineal de "marcar perdida":
//  1. buscar la mascota por microchip
//  2. merge lost=true + timestamp + reportante (write primario)
//  3. crear el LostReport hijo (write primario)
//  4. geolocalizar la IP y adjuntarla (best-effort)
//  5. fan-out de alertas a clínicas cercanas y usuarios opt-in (best-effort)
//
// 4 y 5 nunca fallan la operación: la mascota queda marcada como perdida
// aunque todas las notificaciones se caigan.
func (s *Service) ReportLost(ctx context.Context, reporterUserID string, in ReportInput) (LostReport, error) {
	chip := strings.TrimSpace(in.Microchip)
	if chip == "" {
		return LostReport{}, ErrInvalidInput
	}

	p, err := s.pets.FindByMicrochip(ctx, chip)
	if err != nil {
		return LostReport{}, ErrPetNotFound
	}

	at, err := s.pets.MarkLost(ctx, p.ID, reporterUserID)
	if err != nil {
		return LostReport{}, err
	}

	rep := LostReport{
		ID:        uuid.NewString(),
		PetID:     p.ID,
		By:        reporterUserID,
		At:        at,
		IP:        strings.TrimSpace(in.IP),
		UserAgent: strings.TrimSpace(in.UserAgent),
		Device:    deviceSummary(in.UserAgent),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return LostReport{}, err
	}

	// Best-effort de acá en adelante: log y seguir.
	s.geolocate(ctx, &rep)
	s.fanOutAlerts(ctx, p.ID, chip)

	return rep, nil
}

// geolocate resuelve la IP del reportante y, si sale, adjunta la ubicación
// al reporte y la guarda como última ubicación conocida de la mascota.
func (s *Service) geolocate(ctx context.Context, rep *LostReport) {
	if s.locator == nil {
		return
	}

	ip := normalizeIP(rep.IP)
	if ip == "" {
		return
	}

	loc, err := s.locator.Locate(ctx, ip)
	if err != nil {
		s.log.Warn("geoip lookup failed", map[string]any{"ip": ip, "err": err.Error()})
		return
	}

	rep.Location = &Location{
		Lat:     loc.Lat,
		Lng:     loc.Lng,
		City:    loc.City,
		Region:  loc.Region,
		Country: loc.Country,
	}
	if err := s.reports.AttachLocation(ctx, rep.PetID, rep.ID, *rep.Location); err != nil {
		s.log.Warn("attach location failed", map[string]any{"report": rep.ID, "err": err.Error()})
	}
	if err := s.pets.SetLastKnownLocation(ctx, rep.PetID, loc.Lat, loc.Lng); err != nil {
		s.log.Warn("set last known location failed", map[string]any{"pet": rep.PetID, "err": err.Error()})
	}
}

// fanOutAlerts escribe un LostAlert por clínica dentro del radio y por usuario
// opt-in (excluyendo al tutor). Cada write es independiente; un fallo no corta
// el resto.
func (s *Service) fanOutAlerts(ctx context.Context, petID, microchip string) {
	// Releer la mascota: la geolocalización pudo acabar de setear coordenadas.
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		s.log.Warn("fan-out: reread pet failed", map[string]any{"pet": petID, "err": err.Error()})
		return
	}

	at := s.now()

	if p.LastKnownLat != nil && p.LastKnownLng != nil {
		cls, err := s.clinics.List(ctx)
		if err != nil {
			s.log.Warn("fan-out: list clinics failed", map[string]any{"err": err.Error()})
		} else {
			for _, c := range cls {
				if haversineKm(*p.LastKnownLat, *p.LastKnownLng, c.Lat, c.Lng) > alertRadiusKm {
					continue
				}
				s.createAlert(ctx, LostAlert{
					ID:        uuid.NewString(),
					Type:      AlertClinic,
					TargetID:  c.ID,
					Microchip: microchip,
					PetID:     petID,
					At:        at,
				})
			}
		}
	}

	optIn, err := s.users.ListNotifyOptIn(ctx)
	if err != nil {
		s.log.Warn("fan-out: list opt-in users failed", map[string]any{"err": err.Error()})
		return
	}
	for _, u := range optIn {
		if u.ID == p.OwnerUserID {
			continue
		}
		s.createAlert(ctx, LostAlert{
			ID:        uuid.NewString(),
			Type:      AlertUser,
			TargetID:  u.ID,
			Microchip: microchip,
			PetID:     petID,
			At:        at,
		})
	}
}

func (s *Service) createAlert(ctx context.Context, a LostAlert) {
	if err := s.alerts.Create(ctx, a); err != nil {
		s.log.Warn("fan-out: create alert failed", map[string]any{
			"type":   string(a.Type),
			"target": a.TargetID,
			"err":    err.Error(),
		})
	}
}

type ClickInput struct {
	Microchip string
	Origin    string
	UserAgent string
}

// LogContactClick registra un clic de WhatsApp. Best-effort: si el write
// falla se loguea y la respuesta sigue siendo ok.
func (s *Service) LogContactClick(ctx context.Context, userID string, in ClickInput) {
	c := WaClick{
		ID:        uuid.NewString(),
		UserID:    userID,
		Microchip: strings.TrimSpace(in.Microchip),
		Origin:    strings.TrimSpace(in.Origin),
		UserAgent: strings.TrimSpace(in.UserAgent),
		At:        s.now(),
	}
	if err := s.clicks.Create(ctx, c); err != nil {
		s.log.Warn("wa click log failed", map[string]any{"uid": userID, "err": err.Error()})
	}
}

// normalizeIP saca el prefijo IPv6-mapped-IPv4 y descarta loopback/vacías,
// que no tiene sentido geolocalizar.
func normalizeIP(raw string) string {
	ip := strings.TrimSpace(raw)
	ip = strings.TrimPrefix(ip, "::ffff:")

	// RemoteAddr puede venir como host:puerto.
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() {
		return ""
	}
	return ip
}

// deviceSummary arma un resumen legible del user-agent ("Chrome 120 / Linux").
func deviceSummary(ua string) string {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return ""
	}

	parsed := useragent.New(ua)
	browser, version := parsed.Browser()
	if browser == "" {
		return ""
	}

	out := browser
	if version != "" {
		out += " " + version
	}
	if osName := parsed.OS(); osName != "" {
		out += " / " + osName
	}
	return out
}
