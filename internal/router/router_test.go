package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medicine-schedule-service/internal/router"
)

const (
	adminID   = "admin-1"
	doctorID  = "doctor-1"
	storeID   = "store-1"
	patientID = "patient-1"
)

type itemResp struct {
	ID             string `json:"id"`
	Position       int    `json:"position"`
	MedicineName   string `json:"medicine_name"`
	GapBetweenDays int    `json:"gap_between_days"`
	TotalDoses     int    `json:"total_doses"`
}

type scheduleResp struct {
	ID      string `json:"id"`
	Patient struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"patient"`
	Author struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"author"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Version   int        `json:"version"`
	Items     []itemResp `json:"items"`
}

func TestHTTP_EndToEnd_ScheduleLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Admin registra al paciente
	registerPatient(t, ts.URL, patientID, "Ana Pérez")

	// 2) Doctor crea el schedule
	sch := createSchedule(t, ts.URL, doctorID, "DOCTOR", map[string]any{
		"patient_id":     patientID,
		"start_date":     "2025-03-01",
		"number_of_days": 4,
		"items": []map[string]any{
			{"medicine_name": "Amoxicilina", "dosage": "500mg", "times_per_day": 2, "gap_between_days": 0},
			{"medicine_name": "Vitamina D", "dosage": "1 tablet", "times_per_day": "1", "gap_between_days": 1},
		},
	})
	if sch.Version != 1 || len(sch.Items) != 2 {
		t.Fatalf("unexpected created schedule: %+v", sch)
	}
	if sch.EndDate != "2025-03-04" {
		t.Fatalf("expected end_date 2025-03-04, got %s", sch.EndDate)
	}
	if sch.Patient.Name != "Ana Pérez" {
		t.Fatalf("expected patient name projection, got %q", sch.Patient.Name)
	}
	if sch.Items[0].TotalDoses != 8 || sch.Items[1].TotalDoses != 2 {
		t.Fatalf("unexpected total doses: %+v", sch.Items)
	}

	// 3) Lectura: paciente sí, otro paciente y otro autor no
	{
		st, body := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID, patientID, "PATIENT", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get by patient, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID, "patient-2", "PATIENT", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get by other patient, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID, storeID, "MEDSTORE", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get by other author, got %d", st)
		}
	}

	// 4) Calendario
	{
		st, body := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID+"/calendar", patientID, "PATIENT", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar, got %d body=%s", st, string(body))
		}
		var cal struct {
			TotalDoses int `json:"total_doses"`
			Events     []struct {
				Date   string `json:"date"`
				ItemID string `json:"item_id"`
				Doses  int    `json:"doses"`
			} `json:"events"`
		}
		_ = json.Unmarshal(body, &cal)
		if cal.TotalDoses != 10 || len(cal.Events) != 6 {
			t.Fatalf("unexpected calendar: total=%d events=%d body=%s", cal.TotalDoses, len(cal.Events), string(body))
		}
		if cal.Events[0].Date != "2025-03-01" || cal.Events[len(cal.Events)-1].Date != "2025-03-04" {
			t.Fatalf("calendar out of order: %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID+"/calendar?from=2025-03-02&to=2025-03-02", doctorID, "DOCTOR", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 windowed calendar, got %d body=%s", st, string(body))
		}
		var cal struct {
			TotalDoses int `json:"total_doses"`
		}
		_ = json.Unmarshal(body, &cal)
		if cal.TotalDoses != 2 {
			t.Fatalf("expected 2 doses on 2025-03-02, got %d", cal.TotalDoses)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID+"/calendar?from=2025-03-04&to=2025-03-01", doctorID, "DOCTOR", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for from > to, got %d", st)
		}
	}

	// 5) Reemplazo total: se conserva el primer item, se borra el segundo, se agrega uno nuevo
	var updated scheduleResp
	{
		st, body := doReq(t, ts.URL, "PUT", "/schedules/"+sch.ID, doctorID, "DOCTOR", map[string]any{
			"start_date":       "2025-03-02",
			"number_of_days":   3,
			"expected_version": 1,
			"items": []map[string]any{
				{"id": sch.Items[0].ID, "medicine_name": "Amoxicilina", "dosage": "875mg", "times_per_day": 2, "gap_between_days": 0},
				{"medicine_name": "Ibuprofeno", "dosage": "400mg", "times_per_day": 3, "gap_between_days": 2},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &updated)
	}
	if updated.Version != 2 || len(updated.Items) != 2 {
		t.Fatalf("unexpected updated schedule: %+v", updated)
	}
	if updated.Items[0].ID != sch.Items[0].ID {
		t.Fatalf("expected kept item id %s, got %s", sch.Items[0].ID, updated.Items[0].ID)
	}
	if updated.Items[1].ID == "" || updated.Items[1].ID == sch.Items[1].ID {
		t.Fatalf("expected a fresh id for the new item, got %q", updated.Items[1].ID)
	}

	// 6) Versión vieja => 409
	{
		st, _ := doReq(t, ts.URL, "PUT", "/schedules/"+sch.ID, doctorID, "DOCTOR", map[string]any{
			"start_date":       "2025-03-02",
			"number_of_days":   3,
			"expected_version": 1,
			"items": []map[string]any{
				{"medicine_name": "Amoxicilina", "dosage": "875mg", "times_per_day": 2},
			},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 stale version, got %d", st)
		}
	}

	// 7) Cambiar el paciente => 400
	{
		st, _ := doReq(t, ts.URL, "PUT", "/schedules/"+sch.ID, doctorID, "DOCTOR", map[string]any{
			"patient_id":     "patient-2",
			"start_date":     "2025-03-02",
			"number_of_days": 3,
			"items": []map[string]any{
				{"medicine_name": "Amoxicilina", "dosage": "875mg", "times_per_day": 2},
			},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 changing patient, got %d", st)
		}
	}

	// 8) Solo el autor edita
	{
		st, _ := doReq(t, ts.URL, "PUT", "/schedules/"+sch.ID, patientID, "PATIENT", map[string]any{
			"start_date":     "2025-03-02",
			"number_of_days": 3,
			"items":          []map[string]any{{"medicine_name": "X", "dosage": "1", "times_per_day": 1}},
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 update by patient, got %d", st)
		}
	}

	// 9) Dashboards
	{
		st, body := doReq(t, ts.URL, "GET", "/me/schedules", doctorID, "DOCTOR", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 author dashboard, got %d body=%s", st, string(body))
		}
		var list []struct {
			ID        string `json:"id"`
			ItemCount int    `json:"item_count"`
			Version   int    `json:"version"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].ItemCount != 2 || list[0].Version != 2 {
			t.Fatalf("unexpected author dashboard: %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/me/schedules", storeID, "MEDSTORE", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty medstore dashboard, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/schedules?patient_id="+patientID, patientID, "PATIENT", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 patient list, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/schedules?patient_id="+patientID, "patient-2", "PATIENT", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 listing another patient, got %d", st)
		}
	}

	// 10) Borrado por el autor
	{
		st, body := doReq(t, ts.URL, "DELETE", "/schedules/"+sch.ID, doctorID, "DOCTOR", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/schedules/"+sch.ID, doctorID, "DOCTOR", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_CreateSchedule_RejectsWholeBatch(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	registerPatient(t, ts.URL, patientID, "Ana Pérez")

	st, body := doReq(t, ts.URL, "POST", "/schedules", storeID, "MEDSTORE", map[string]any{
		"patient_id":     patientID,
		"start_date":     "2025-03-01",
		"number_of_days": 5,
		"items": []map[string]any{
			{"medicine_name": "Paracetamol", "dosage": "1g", "times_per_day": 3},
			{"medicine_name": "", "dosage": "1g", "times_per_day": 0},
		},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid item, got %d body=%s", st, string(body))
	}

	var resp struct {
		Details []struct {
			Index int    `json:"index"`
			Field string `json:"field"`
		} `json:"details"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Details) == 0 || resp.Details[0].Index != 1 {
		t.Fatalf("expected details for items[1], got %s", string(body))
	}

	// Nada quedó guardado
	st, body = doReq(t, ts.URL, "GET", "/me/schedules", storeID, "MEDSTORE", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected no schedules after rejected batch, got %d body=%s", st, string(body))
	}
}

func TestHTTP_CreateSchedule_ErrorIndexSkipsBlankRows(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	registerPatient(t, ts.URL, patientID, "Ana Pérez")

	st, body := doReq(t, ts.URL, "POST", "/schedules", doctorID, "DOCTOR", map[string]any{
		"patient_id":     patientID,
		"start_date":     "2025-03-01",
		"number_of_days": 5,
		"items": []map[string]any{
			{},
			{"medicine_name": "Paracetamol", "dosage": "1g", "times_per_day": 3},
			{"medicine_name": "Ibuprofeno", "dosage": "400mg", "times_per_day": 0},
		},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid item, got %d body=%s", st, string(body))
	}

	var resp struct {
		Details []struct {
			Index int    `json:"index"`
			Field string `json:"field"`
		} `json:"details"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Details) != 1 || resp.Details[0].Index != 2 || resp.Details[0].Field != "times_per_day" {
		t.Fatalf("expected details for items[2].times_per_day, got %s", string(body))
	}
}

func TestHTTP_CreateSchedule_Errors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	registerPatient(t, ts.URL, patientID, "Ana Pérez")

	valid := func() map[string]any {
		return map[string]any{
			"patient_id":     patientID,
			"start_date":     "2025-03-01",
			"number_of_days": 5,
			"items": []map[string]any{
				{"medicine_name": "Paracetamol", "dosage": "1g", "times_per_day": 3},
			},
		}
	}

	cases := []struct {
		name   string
		userID string
		role   string
		mutate func(map[string]any)
		want   int
	}{
		{"sin auth", "", "", nil, http.StatusUnauthorized},
		{"paciente no puede crear", patientID, "PATIENT", nil, http.StatusForbidden},
		{"fecha inválida", doctorID, "DOCTOR", func(m map[string]any) { m["start_date"] = "01/03/2025" }, http.StatusBadRequest},
		{"duración cero", doctorID, "DOCTOR", func(m map[string]any) { m["number_of_days"] = 0 }, http.StatusBadRequest},
		{"duración excesiva", doctorID, "DOCTOR", func(m map[string]any) { m["number_of_days"] = 100000 }, http.StatusBadRequest},
		{"gap fuera de rango", doctorID, "DOCTOR", func(m map[string]any) {
			m["items"] = []map[string]any{
				{"medicine_name": "Paracetamol", "dosage": "1g", "times_per_day": 1, "gap_between_days": json.Number("9223372036854775807")},
			}
		}, http.StatusBadRequest},
		{"demasiadas tomas", doctorID, "DOCTOR", func(m map[string]any) {
			m["items"] = []map[string]any{{"medicine_name": "Paracetamol", "dosage": "1g", "times_per_day": 1000}}
		}, http.StatusBadRequest},
		{"sin items", doctorID, "DOCTOR", func(m map[string]any) { m["items"] = []map[string]any{} }, http.StatusBadRequest},
		{"paciente inexistente", doctorID, "DOCTOR", func(m map[string]any) { m["patient_id"] = "ghost" }, http.StatusUnprocessableEntity},
		{"ok", doctorID, "DOCTOR", nil, http.StatusCreated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := valid()
			if tc.mutate != nil {
				tc.mutate(payload)
			}
			st, body := doReq(t, ts.URL, "POST", "/schedules", tc.userID, tc.role, payload)
			if st != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, st, string(body))
			}
		})
	}
}

func TestHTTP_PatientSearch(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	registerPatient(t, ts.URL, "p-1", "Ana Pérez")
	registerPatient(t, ts.URL, "p-2", "Bruno Díaz")

	{
		st, body := doReq(t, ts.URL, "GET", "/patients?q=ana", doctorID, "DOCTOR", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var list []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].ID != "p-1" {
			t.Fatalf("unexpected search result: %s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients?q=ana", "p-2", "PATIENT", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 search by patient, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients?limit=500", doctorID, "DOCTOR", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 limit out of range, got %d", st)
		}
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		st, body := doReq(t, ts.URL, "GET", path, "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on %s, got %d body=%s", path, st, string(body))
		}
	}
}

func registerPatient(t *testing.T, baseURL, id, name string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", adminID, "ADMIN", map[string]any{
		"id":   id,
		"name": name,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register patient, got %d body=%s", st, string(body))
	}
}

func createSchedule(t *testing.T, baseURL, userID, role string, payload map[string]any) scheduleResp {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/schedules", userID, role, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create schedule, got %d body=%s", st, string(body))
	}

	var resp scheduleResp
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create schedule: missing id body=%s", string(body))
	}
	return resp
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
