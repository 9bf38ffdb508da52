package router

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-rescue-registry/docs"
	fsrepo "pet-rescue-registry/internal/adapters/storage/firestore"
	mem "pet-rescue-registry/internal/adapters/storage/memory"
	pg "pet-rescue-registry/internal/adapters/storage/postgres"
	"pet-rescue-registry/internal/domain/advisor"
	"pet-rescue-registry/internal/domain/billing"
	"pet-rescue-registry/internal/domain/clinics"
	"pet-rescue-registry/internal/domain/pets"
	"pet-rescue-registry/internal/domain/rescue"
	"pet-rescue-registry/internal/domain/users"
	"pet-rescue-registry/internal/middleware"
	"pet-rescue-registry/internal/platform/logger"
	"pet-rescue-registry/internal/ports/ai"
	"pet-rescue-registry/internal/ports/auth"
	"pet-rescue-registry/internal/ports/geo"
	"pet-rescue-registry/internal/ports/payments"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Storage: Firestore manda si viene; después Postgres; después in-memory.
	Firestore *fs.Client
	DB        *sql.DB

	// Integraciones opcionales; nil = feature degradada, no caída.
	Gateway   payments.Gateway
	Completer ai.Completer
	Locator   geo.Locator

	PremiumPriceID string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"ts": time.Now().UnixMilli(),
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo    users.Repository
		petRepo     pets.Repository
		clinicRepo  clinics.Repository
		reportsRepo rescue.ReportsRepository
		alertsRepo  rescue.AlertsRepository
		clicksRepo  rescue.ClicksRepository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if opts.Firestore == nil && db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back", map[string]any{"err": err.Error()})
			}
		}
	}

	switch {
	case opts.Firestore != nil:
		userRepo = fsrepo.NewUserRepo(opts.Firestore)
		petRepo = fsrepo.NewPetRepo(opts.Firestore)
		clinicRepo = fsrepo.NewClinicRepo(opts.Firestore)
		reportsRepo = fsrepo.NewReportsRepo(opts.Firestore)
		alertsRepo = fsrepo.NewAlertsRepo(opts.Firestore)
		clicksRepo = fsrepo.NewClicksRepo(opts.Firestore)
	case db != nil:
		userRepo = pg.NewUsersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		clinicRepo = pg.NewClinicsRepo(db)
		reportsRepo = pg.NewReportsRepo(db)
		alertsRepo = pg.NewAlertsRepo(db)
		clicksRepo = pg.NewClicksRepo(db)
	default:
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		clinicRepo = mem.NewClinicRepo()
		reportsRepo = mem.NewReportsRepo()
		alertsRepo = mem.NewAlertsRepo()
		clicksRepo = mem.NewClicksRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	clinicsSvc := clinics.NewService(clinicRepo)
	rescueSvc := rescue.NewService(petsSvc, usersSvc, clinicsSvc, reportsRepo, alertsRepo, clicksRepo, opts.Locator, log)
	billingSvc := billing.NewService(opts.Gateway, usersSvc, opts.PremiumPriceID, log)
	advisorSvc := advisor.NewService(opts.Completer, usersSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	clinics.RegisterRoutes(r, clinicsSvc)
	rescue.RegisterRoutes(r, rescueSvc)
	billing.RegisterRoutes(r, billingSvc)
	advisor.RegisterRoutes(r, advisorSvc)

	return r
}
