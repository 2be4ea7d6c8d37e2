package repo

import (
	"context"
	"time"
)

// TokenRepo keeps the denylist of revoked token ids.
type TokenRepo interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error

	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// CredentialVerifier decides whether a username/password pair may log in.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}
