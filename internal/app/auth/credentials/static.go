package credentials

import (
	"context"
	"crypto/subtle"

	"github.com/alexedwards/argon2id"

	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
)

// Static accepts exactly one configured username. The password is checked
// against an argon2id hash when one is configured, otherwise against the
// plaintext password in constant time.
type Static struct {
	username     string
	password     string
	passwordHash string
}

func NewStatic(username, password, passwordHash string) *Static {
	return &Static{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
	}
}

func (s *Static) Verify(_ context.Context, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	if s.passwordHash != "" {
		ok, err := argon2id.ComparePasswordAndHash(password, s.passwordHash)
		if err != nil {
			return false, customErrors.WrapInternal(err, "compare password hash")
		}
		passOK = ok
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	return userOK && passOK, nil
}
