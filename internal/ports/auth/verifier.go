package auth

import "context"

// AuthVerifier valida un bearer token. Los claims tienen que traer UserID y Role.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc permite usar una función como AuthVerifier (tests, stubs locales).
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
