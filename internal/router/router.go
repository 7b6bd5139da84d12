package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "medicine-schedule-service/docs"
	mem "medicine-schedule-service/internal/adapters/storage/memory"
	pg "medicine-schedule-service/internal/adapters/storage/postgres"
	"medicine-schedule-service/internal/domain/patients"
	"medicine-schedule-service/internal/domain/schedules"
	"medicine-schedule-service/internal/middleware"
	"medicine-schedule-service/internal/platform/metrics"
	"medicine-schedule-service/internal/ports/auth"
	"medicine-schedule-service/internal/ports/lookup"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	ServiceName string

	// Opcional: directorio remoto de pacientes. Si es nil se usa el local.
	PatientDirectory lookup.PatientDirectory
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "medicine-schedule-service"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(log, m))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ready", readyHandler(opts.DB))
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		patientRepo  patients.Repository
		scheduleRepo schedules.Repository
	)

	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		scheduleRepo = pg.NewSchedulesRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		scheduleRepo = mem.NewScheduleRepo(patientRepo)
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientRepo, log.Named("patients"))
	schedulesSvc := schedules.NewService(scheduleRepo,
		schedules.WithLogger(log.Named("schedules")),
		schedules.WithMetrics(m),
	)

	var dir lookup.PatientDirectory = patientsSvc
	if opts.PatientDirectory != nil {
		dir = opts.PatientDirectory
	}

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc, dir)
	schedules.RegisterRoutes(r, schedulesSvc)

	return r
}

func readyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
