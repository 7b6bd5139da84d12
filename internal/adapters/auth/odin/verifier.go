package odin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medicine-schedule-service/internal/ports/auth"
)

var (
	ErrTokenEmpty  = errors.New("token is empty")
	ErrRoleMissing = errors.New("token has no schedule role")
)

var _ auth.AuthVerifier = (*Verifier)(nil)

// Verifier resuelve el token contra Odin. Un usuario sin rol conocido
// (DOCTOR, MEDSTORE, PATIENT, ADMIN) no puede operar schedules y se rechaza acá.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	if strings.TrimSpace(token) == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("odin verify: %w", err)
	}
	if claims.Role == "" {
		return auth.Claims{}, fmt.Errorf("%w: user %s", ErrRoleMissing, claims.UserID)
	}
	return claims, nil
}
