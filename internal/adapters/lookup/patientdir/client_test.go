package patientdir

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"medicine-schedule-service/internal/ports/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchAndGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		switch r.URL.Path {
		case "/v1/patients":
			assert.Equal(t, "ana", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode([]patientDTO{{ID: "p1", Name: "Ana", Email: "ana@example.com"}})
		case "/v1/patients/p1":
			_ = json.NewEncoder(w).Encode(patientDTO{ID: "p1", Name: "Ana"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, APIKey: "secret"}, nil, nil)
	require.NoError(t, err)

	list, err := c.Search(context.Background(), "ana", 5)
	require.NoError(t, err)
	assert.Equal(t, []lookup.Patient{{ID: "p1", Name: "Ana", Email: "ana@example.com"}}, list)

	p, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)

	_, err = c.Get(context.Background(), "nope")
	require.ErrorIs(t, err, lookup.ErrPatientNotFound)
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, FailureThreshold: 2, OpenTimeout: time.Minute}, nil, nil)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := c.Search(context.Background(), "x", 1)
		require.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, int32(2), calls.Load(), "con el circuito abierto no se llama al upstream")
}

func TestClient_NotFoundDoesNotTrip(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, FailureThreshold: 1}, nil, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, lookup.ErrPatientNotFound)
	}
	assert.Equal(t, int32(3), calls.Load())
}
