package odin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicine-schedule-service/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_ReturnsClaimsWithRole(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id": "doc-1",
			"email":   "doc@example.com",
			"role":    "doctor",
		})
	})

	claims, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "doc-1", Email: "doc@example.com", Role: auth.RoleDoctor}, claims)
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrOdinUnauthorized)
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrOdinNotConfigured)
}

func TestVerify_RejectsUnknownRole(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id": "u-1",
			"role":    "VETERINARIAN",
		})
	})

	_, err := v.Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrRoleMissing)
}

func TestVerify_EmptyToken(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("odin should not be called for an empty token")
	})

	_, err := v.Verify(context.Background(), "   ")
	require.ErrorIs(t, err, ErrTokenEmpty)
}
