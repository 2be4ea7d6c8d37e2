package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainjwt "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/jwt"
	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/config"
)

type JwtUtilImpl struct {
	key      []byte
	ttl      time.Duration
	issuer   string
	audience string
	now      func() time.Time
}

type Option func(*JwtUtilImpl)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JwtUtilImpl) { j.now = now }
}

func NewJWTUtil(cfg *config.Config, opts ...Option) (*JwtUtilImpl, error) {
	switch {
	case cfg.JWTKey == "":
		return nil, customErrors.NewConfiguration("jwt signing key is empty")
	case cfg.Issuer == "":
		return nil, customErrors.NewConfiguration("jwt issuer is empty")
	case cfg.Audience == "":
		return nil, customErrors.NewConfiguration("jwt audience is empty")
	case cfg.TokenTTL <= 0:
		return nil, customErrors.NewConfiguration("jwt ttl must be positive")
	}

	j := &JwtUtilImpl{
		key:      []byte(cfg.JWTKey),
		ttl:      cfg.TokenTTL,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JwtUtilImpl) GenerateAccessToken(subject string) (token string, exp time.Time, jti string, err error) {
	jti = uuid.NewString()
	now := j.now()

	claims := domainjwt.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.key)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

// ValidateAccessToken checks signature, issuer, audience and expiry. Expiry
// is compared with zero leeway.
func (j *JwtUtilImpl) ValidateAccessToken(raw string) (domainjwt.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &domainjwt.AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil || !token.Valid {
		return domainjwt.AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*domainjwt.AccessClaims)
	if !ok {
		return domainjwt.AccessClaims{}, customErrors.WrapInternal(
			errors.New("claims not AccessClaims"), "ValidateAccessToken",
		)
	}

	if claims.Subject == "" {
		return domainjwt.AccessClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
