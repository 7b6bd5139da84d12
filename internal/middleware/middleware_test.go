package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medicine-schedule-service/internal/middleware"
	"medicine-schedule-service/internal/platform/metrics"
	"medicine-schedule-service/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// echoClaims responde "<user>|<role>" o "anon".
func echoClaims() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.GetClaims(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anon"))
			return
		}
		_, _ = w.Write([]byte(c.UserID + "|" + string(c.Role)))
	})
}

func serve(t *testing.T, h http.Handler, req *http.Request) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	b, _ := io.ReadAll(rec.Body)
	return string(b)
}

func TestAuthContext_DevHeaders(t *testing.T) {
	h := middleware.AuthContext(nil)(echoClaims())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "doc-1")
	req.Header.Set("X-Debug-Role", "med_store")
	assert.Equal(t, "doc-1|MEDSTORE", serve(t, h, req))

	assert.Equal(t, "anon", serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestAuthContext_BearerToken(t *testing.T) {
	v := auth.VerifierFunc(func(_ context.Context, token string) (auth.Claims, error) {
		if token != "good" {
			return auth.Claims{}, errors.New("bad token")
		}
		return auth.Claims{UserID: "pat-1", Role: auth.RolePatient}, nil
	})
	h := middleware.AuthContext(v)(echoClaims())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, "pat-1|PATIENT", serve(t, h, req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	assert.Equal(t, "anon", serve(t, h, req))

	// Con verifier los headers de debug se ignoran
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "doc-1")
	assert.Equal(t, "anon", serve(t, h, req))
}

func TestRequestLogger_UsesRoutePattern(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(zap.New(core), m))
	r.Get("/schedules/{scheduleID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	serve(t, r, httptest.NewRequest(http.MethodGet, "/schedules/abc-123", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/schedules/{scheduleID}", fields["route"])
	assert.Equal(t, "/schedules/abc-123", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])

	body := serve(t, m.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(body, `route="/schedules/{scheduleID}"`), body)
}
