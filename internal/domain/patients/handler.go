package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medicine-schedule-service/internal/middleware"
	"medicine-schedule-service/internal/ports/auth"
	"medicine-schedule-service/internal/ports/lookup"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el alta local y la búsqueda. La búsqueda pasa por el PatientDirectory,
// que puede ser este mismo Service o el cliente remoto.
func RegisterRoutes(r chi.Router, svc *Service, dir lookup.PatientDirectory) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", registerPatientHandler(svc))
		pr.Get("/", searchPatientsHandler(dir))
		pr.Get("/{patientID}", getPatientHandler(dir))
	})
}

type registerPatientRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	BirthDate string `json:"birth_date,omitempty"` // YYYY-MM-DD opcional
}

type patientResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// registerPatientHandler godoc
// @Summary Registrar paciente
// @Description Alta en el directorio local. ADMIN puede registrar a cualquiera; un PATIENT solo a sí mismo (el id se toma del token).
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body registerPatientRequest true "Datos del paciente"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "patient already exists"
// @Router /patients [post]
func registerPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		switch claims.Role {
		case auth.RoleAdmin:
		case auth.RolePatient:
			req.ID = claims.UserID
		default:
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Register(r.Context(), RegisterInput{
			ID:        req.ID,
			Name:      req.Name,
			Email:     req.Email,
			BirthDate: bd,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "name is required and email must be valid", http.StatusBadRequest)
			case errors.Is(err, ErrAlreadyExists):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, patientResponse{
			ID:        p.ID,
			Name:      p.Name,
			Email:     p.Email,
			BirthDate: p.BirthDate,
			CreatedAt: p.CreatedAt,
		})
	}
}

// searchPatientsHandler godoc
// @Summary Buscar pacientes
// @Description Búsqueda por nombre o email para elegir el paciente de un schedule. Solo DOCTOR, MEDSTORE o ADMIN.
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param q query string false "Texto a buscar"
// @Param limit query int false "Máximo de resultados (1-100). Por defecto 20"
// @Success 200 {array} lookup.Patient
// @Failure 400 {string} string "limit inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "directorio no disponible"
// @Router /patients [get]
func searchPatientsHandler(dir lookup.PatientDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !canSearch(claims.Role) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		limit := DefaultSearchLimit
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > MaxSearchLimit {
				http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
				return
			}
			limit = n
		}

		list, err := dir.Search(r.Context(), r.URL.Query().Get("q"), limit)
		if err != nil {
			http.Error(w, "patient directory unavailable", http.StatusServiceUnavailable)
			return
		}
		if list == nil {
			list = []lookup.Patient{}
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// getPatientHandler godoc
// @Summary Obtener paciente
// @Description Devuelve un paciente del directorio. El propio paciente, DOCTOR, MEDSTORE o ADMIN.
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} lookup.Patient
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(dir lookup.PatientDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "patientID")
		if !canSearch(claims.Role) && claims.UserID != id {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		p, err := dir.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, lookup.ErrPatientNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			http.Error(w, "patient directory unavailable", http.StatusServiceUnavailable)
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func canSearch(role auth.Role) bool {
	switch role {
	case auth.RoleDoctor, auth.RoleMedStore, auth.RoleAdmin:
		return true
	default:
		return false
	}
}

// writeJSON: mismo helper que en schedules.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
