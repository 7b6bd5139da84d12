package schedules

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medicine-schedule-service/internal/middleware"
	"medicine-schedule-service/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/schedules", func(sr chi.Router) {
		sr.Post("/", createScheduleHandler(svc))
		sr.Get("/", listPatientSchedulesHandler(svc))

		sr.Get("/{scheduleID}", getScheduleHandler(svc))
		sr.Put("/{scheduleID}", updateScheduleHandler(svc))
		sr.Delete("/{scheduleID}", deleteScheduleHandler(svc))

		sr.Get("/{scheduleID}/calendar", calendarHandler(svc))
	})

	// Dashboard del autor (doctor / med-store)
	r.Get("/me/schedules", listMySchedulesHandler(svc))
}

// flexInt acepta número JSON o string numérico ("10"). Un valor no entero queda en -1
// para que la validación de dominio lo rechace con su error específico.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == math.Trunc(v) && math.Abs(v) < math.MaxInt32 {
		*f = flexInt(int(v))
		return nil
	}
	*f = -1
	return nil
}

// itemRequest es un medicamento del schedule. Sin id => item nuevo.
type itemRequest struct {
	ID             string  `json:"id,omitempty"`
	MedicineName   string  `json:"medicine_name"`
	Dosage         string  `json:"dosage"`
	TimesPerDay    flexInt `json:"times_per_day" swaggertype:"integer"`
	GapBetweenDays flexInt `json:"gap_between_days" swaggertype:"integer"`
	Notes          string  `json:"notes,omitempty"`
}

// scheduleRequest es el cuerpo de alta y de reemplazo total.
type scheduleRequest struct {
	PatientID    string        `json:"patient_id"`
	StartDate    string        `json:"start_date"` // YYYY-MM-DD
	NumberOfDays flexInt       `json:"number_of_days" swaggertype:"integer"`
	Notes        string        `json:"notes,omitempty"`
	Items        []itemRequest `json:"items"`

	// Solo en PUT. Si vienen, tienen que coincidir con el autor guardado.
	AuthorType string `json:"author_type,omitempty" enums:"DOCTOR,MEDSTORE"`
	AuthorID   string `json:"author_id,omitempty"`

	// Solo en PUT. Omitido o 0 => last-write-wins.
	ExpectedVersion flexInt `json:"expected_version,omitempty" swaggertype:"integer"`
}

type authorResponse struct {
	Type AuthorType `json:"type"`
	ID   string     `json:"id"`
	Name string     `json:"name,omitempty"`
}

type patientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type itemResponse struct {
	ID             string `json:"id"`
	Position       int    `json:"position"`
	MedicineName   string `json:"medicine_name"`
	Dosage         string `json:"dosage"`
	TimesPerDay    int    `json:"times_per_day"`
	GapBetweenDays int    `json:"gap_between_days"`
	Notes          string `json:"notes,omitempty"`
	TotalDoses     int    `json:"total_doses"`
}

// scheduleResponse representa un schedule completo con sus items.
type scheduleResponse struct {
	ID           string          `json:"id"`
	Patient      patientResponse `json:"patient"`
	Author       authorResponse  `json:"author"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	NumberOfDays int             `json:"number_of_days"`
	Notes        string          `json:"notes,omitempty"`
	Version      int             `json:"version"`
	Items        []itemResponse  `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// summaryResponse es una fila del dashboard (sin items ni calendario).
type summaryResponse struct {
	ID           string          `json:"id"`
	Patient      patientResponse `json:"patient"`
	Author       authorResponse  `json:"author"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	NumberOfDays int             `json:"number_of_days"`
	ItemCount    int             `json:"item_count"`
	Version      int             `json:"version"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type doseEventResponse struct {
	Date         string `json:"date"`
	ItemID       string `json:"item_id"`
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage"`
	Doses        int    `json:"doses"`
}

type calendarResponse struct {
	ScheduleID string              `json:"schedule_id"`
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	From       string              `json:"from,omitempty"`
	To         string              `json:"to,omitempty"`
	TotalDoses int                 `json:"total_doses"`
	Events     []doseEventResponse `json:"events"`
}

type itemErrorResponse struct {
	Index  int    `json:"index"`
	ItemID string `json:"item_id,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type errorResponse struct {
	Error   string              `json:"error"`
	Details []itemErrorResponse `json:"details,omitempty"`
}

// createScheduleHandler godoc
// @Summary Crear schedule de medicamentos
// @Description Crea un schedule para un paciente. El autor es el caller y tiene que tener rol DOCTOR o MEDSTORE. Todos los items se validan antes de escribir; si alguno falla no se guarda nada. Autenticación: `X-Debug-User-ID` + `X-Debug-Role` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags schedules
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body scheduleRequest true "Schedule; start_date en formato YYYY-MM-DD"
// @Success 201 {object} scheduleResponse
// @Failure 400 {object} errorResponse "invalid json / fecha / duración / items inválidos"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "el caller no es DOCTOR ni MEDSTORE"
// @Failure 422 {object} errorResponse "paciente o autor inexistente"
// @Router /schedules [post]
func createScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}
		author, ok := authorOf(claims)
		if !ok {
			writeError(w, ErrForbidden)
			return
		}

		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		sch, err := svc.Create(r.Context(), author, CreateInput{
			PatientID:    req.PatientID,
			StartDate:    req.StartDate,
			NumberOfDays: int(req.NumberOfDays),
			Notes:        req.Notes,
			Items:        toItemInputs(req.Items),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toScheduleResponse(sch))
	}
}

// getScheduleHandler godoc
// @Summary Obtener schedule
// @Description Devuelve el schedule con sus items. Lo pueden ver el autor, el paciente y ADMIN.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param scheduleID path string true "ID del schedule"
// @Success 200 {object} scheduleResponse
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 404 {object} errorResponse "schedule not found"
// @Router /schedules/{scheduleID} [get]
func getScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		sch, err := svc.GetByID(r.Context(), chi.URLParam(r, "scheduleID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !canRead(claims, sch) {
			writeError(w, ErrForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(sch))
	}
}

// updateScheduleHandler godoc
// @Summary Reemplazar schedule
// @Description Reemplazo total: fecha, duración, notas e items. Items con id se actualizan, sin id se crean y los que no vienen se borran. Paciente y autor no se pueden cambiar. Solo el autor puede editar. `expected_version` opcional para control de concurrencia.
// @Tags schedules
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param scheduleID path string true "ID del schedule"
// @Param payload body scheduleRequest true "Estado completo del schedule"
// @Success 200 {object} scheduleResponse
// @Failure 400 {object} errorResponse "validación / campo inmutable"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 404 {object} errorResponse "schedule not found"
// @Failure 409 {object} errorResponse "expected_version desactualizada"
// @Router /schedules/{scheduleID} [put]
func updateScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id := chi.URLParam(r, "scheduleID")
		current, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !isAuthor(claims, current) {
			writeError(w, ErrForbidden)
			return
		}

		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		if req.ExpectedVersion < 0 {
			writeError(w, fmt.Errorf("%w: expected_version must be a positive integer", ErrInvalidInput))
			return
		}

		in := UpdateInput{
			PatientID:       strings.TrimSpace(req.PatientID),
			StartDate:       req.StartDate,
			NumberOfDays:    int(req.NumberOfDays),
			Notes:           req.Notes,
			Items:           toItemInputs(req.Items),
			ExpectedVersion: int(req.ExpectedVersion),
		}
		if req.AuthorType != "" || req.AuthorID != "" {
			t, _ := ParseAuthorType(req.AuthorType)
			in.Author = &Author{Type: t, ID: strings.TrimSpace(req.AuthorID)}
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(updated))
	}
}

// deleteScheduleHandler godoc
// @Summary Borrar schedule
// @Description Borra el schedule y todos sus items. Solo el autor o ADMIN.
// @Tags schedules
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param scheduleID path string true "ID del schedule"
// @Success 204
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 404 {object} errorResponse "schedule not found"
// @Router /schedules/{scheduleID} [delete]
func deleteScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id := chi.URLParam(r, "scheduleID")
		current, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !isAuthor(claims, current) && claims.Role != auth.RoleAdmin {
			writeError(w, ErrForbidden)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// calendarHandler godoc
// @Summary Calendario de dosis
// @Description Calcula las dosis por día a partir de start_date, number_of_days y el gap de cada item. No se persiste: se recalcula en cada request. `from` y `to` (YYYY-MM-DD, inclusive) recortan el rango.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param scheduleID path string true "ID del schedule"
// @Param from query string false "Primer día a incluir (YYYY-MM-DD)"
// @Param to query string false "Último día a incluir (YYYY-MM-DD)"
// @Success 200 {object} calendarResponse
// @Failure 400 {object} errorResponse "from/to inválidos"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 404 {object} errorResponse "schedule not found"
// @Router /schedules/{scheduleID}/calendar [get]
func calendarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var win Window
		q := r.URL.Query()
		for _, p := range []struct {
			name string
			dst  **time.Time
		}{{"from", &win.From}, {"to", &win.To}} {
			v := strings.TrimSpace(q.Get(p.name))
			if v == "" {
				continue
			}
			t, err := time.Parse(DateLayout, v)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: p.name + " must be YYYY-MM-DD"})
				return
			}
			*p.dst = &t
		}

		id := chi.URLParam(r, "scheduleID")
		sch, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !canRead(claims, sch) {
			writeError(w, ErrForbidden)
			return
		}

		view, err := svc.CalendarOf(r.Context(), sch, win)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCalendarResponse(view, win))
	}
}

// listMySchedulesHandler godoc
// @Summary Mis schedules (autor)
// @Description Lista los schedules creados por el caller (DOCTOR o MEDSTORE), más nuevos primero, con nombre del paciente y cantidad de items.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} summaryResponse
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "el caller no es DOCTOR ni MEDSTORE"
// @Router /me/schedules [get]
func listMySchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		// Un paciente ve sus propios schedules en la misma ruta.
		if claims.Role == auth.RolePatient {
			writeSummaries(w, func() ([]Summary, error) {
				return svc.ListForPatient(r.Context(), claims.UserID)
			})
			return
		}

		author, ok := authorOf(claims)
		if !ok {
			writeError(w, ErrForbidden)
			return
		}
		writeSummaries(w, func() ([]Summary, error) {
			return svc.ListForAuthor(r.Context(), author)
		})
	}
}

// listPatientSchedulesHandler godoc
// @Summary Schedules de un paciente
// @Description Lista los schedules de un paciente, más nuevos primero. Lo puede pedir el propio paciente, cualquier DOCTOR / MEDSTORE o ADMIN.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev: DOCTOR, MEDSTORE, PATIENT o ADMIN"
// @Param Authorization header string false "Bearer token en producción"
// @Param patient_id query string true "ID del paciente"
// @Success 200 {array} summaryResponse
// @Failure 400 {object} errorResponse "patient_id requerido"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Router /schedules [get]
func listPatientSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		patientID := strings.TrimSpace(r.URL.Query().Get("patient_id"))
		if patientID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "patient_id is required"})
			return
		}

		switch claims.Role {
		case auth.RoleAdmin, auth.RoleDoctor, auth.RoleMedStore:
		case auth.RolePatient:
			if claims.UserID != patientID {
				writeError(w, ErrForbidden)
				return
			}
		default:
			writeError(w, ErrForbidden)
			return
		}

		writeSummaries(w, func() ([]Summary, error) {
			return svc.ListForPatient(r.Context(), patientID)
		})
	}
}

func writeSummaries(w http.ResponseWriter, list func() ([]Summary, error)) {
	items, err := list()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]summaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toSummaryResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return auth.Claims{}, false
	}
	return claims, true
}

// authorOf traduce el rol del caller al discriminante de autor.
func authorOf(c auth.Claims) (Author, bool) {
	switch c.Role {
	case auth.RoleDoctor:
		return Author{Type: AuthorTypeDoctor, ID: c.UserID}, true
	case auth.RoleMedStore:
		return Author{Type: AuthorTypeMedStore, ID: c.UserID}, true
	default:
		return Author{}, false
	}
}

func isAuthor(c auth.Claims, s Schedule) bool {
	a, ok := authorOf(c)
	return ok && a == s.Author
}

func canRead(c auth.Claims, s Schedule) bool {
	switch {
	case c.Role == auth.RoleAdmin:
		return true
	case c.Role == auth.RolePatient:
		return c.UserID == s.PatientID
	default:
		return isAuthor(c, s)
	}
}

func toItemInputs(in []itemRequest) []ItemInput {
	out := make([]ItemInput, 0, len(in))
	for _, it := range in {
		out = append(out, ItemInput{
			ID:             it.ID,
			MedicineName:   it.MedicineName,
			Dosage:         it.Dosage,
			TimesPerDay:    int(it.TimesPerDay),
			GapBetweenDays: int(it.GapBetweenDays),
			Notes:          it.Notes,
		})
	}
	return out
}

func toScheduleResponse(s Schedule) scheduleResponse {
	items := make([]itemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, itemResponse{
			ID:             it.ID,
			Position:       it.Position,
			MedicineName:   it.MedicineName,
			Dosage:         it.Dosage,
			TimesPerDay:    it.TimesPerDay,
			GapBetweenDays: it.GapBetweenDays,
			Notes:          it.Notes,
			TotalDoses:     it.TotalDoses(s.NumberOfDays),
		})
	}
	return scheduleResponse{
		ID:           s.ID,
		Patient:      patientResponse{ID: s.PatientID, Name: s.Patient.Name},
		Author:       authorResponse{Type: s.Author.Type, ID: s.Author.ID, Name: s.AuthorName},
		StartDate:    s.StartDate.Format(DateLayout),
		EndDate:      s.EndDate().Format(DateLayout),
		NumberOfDays: s.NumberOfDays,
		Notes:        s.Notes,
		Version:      s.Version,
		Items:        items,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSummaryResponse(s Summary) summaryResponse {
	return summaryResponse{
		ID:           s.Schedule.ID,
		Patient:      patientResponse{ID: s.Schedule.PatientID, Name: s.PatientName},
		Author:       authorResponse{Type: s.Schedule.Author.Type, ID: s.Schedule.Author.ID, Name: s.AuthorName},
		StartDate:    s.Schedule.StartDate.Format(DateLayout),
		EndDate:      s.EndDate.Format(DateLayout),
		NumberOfDays: s.Schedule.NumberOfDays,
		ItemCount:    s.ItemCount,
		Version:      s.Schedule.Version,
		UpdatedAt:    s.Schedule.UpdatedAt,
	}
}

func toCalendarResponse(v CalendarView, win Window) calendarResponse {
	events := make([]doseEventResponse, 0, len(v.Events))
	for _, ev := range v.Events {
		events = append(events, doseEventResponse{
			Date:         ev.Date.Format(DateLayout),
			ItemID:       ev.ItemID,
			MedicineName: ev.MedicineName,
			Dosage:       ev.Dosage,
			Doses:        ev.Doses,
		})
	}
	out := calendarResponse{
		ScheduleID: v.Schedule.ID,
		StartDate:  v.Schedule.StartDate.Format(DateLayout),
		EndDate:    v.Schedule.EndDate().Format(DateLayout),
		TotalDoses: v.TotalDoses,
		Events:     events,
	}
	if win.From != nil {
		out.From = win.From.Format(DateLayout)
	}
	if win.To != nil {
		out.To = win.To.Format(DateLayout)
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]itemErrorResponse, 0, len(verr.Items))
		for _, it := range verr.Items {
			details = append(details, itemErrorResponse{
				Index:  it.Index,
				ItemID: it.ItemID,
				Field:  it.Field,
				Reason: it.Reason,
			})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidItem.Error(), Details: details})
	case IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrNotFound.Error()})
	case errors.Is(err, ErrVersionConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: ErrVersionConflict.Error()})
	case errors.Is(err, ErrConstraintViolation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ErrConstraintViolation.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
