package service

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/repo"
	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
)

type authService struct {
	verifier  repo.CredentialVerifier
	tokenRepo repo.TokenRepo
	jwtUtil   jwt.JWTUtil
	v         *validator.Validate
	log       *zap.Logger
}

type Service interface {
	Login(context.Context, dto.LoginDTO) (model.Session, error)
	Authenticate(ctx context.Context, token string) (model.Principal, error)
	Logout(ctx context.Context, token string) error
}

// New wires the auth service. tokenRepo may be nil, in which case tokens
// cannot be revoked and stay valid until they expire.
func New(
	cv repo.CredentialVerifier,
	tr repo.TokenRepo,
	jm jwt.JWTUtil,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &authService{
		verifier: cv, tokenRepo: tr, jwtUtil: jm, v: v, log: log,
	}
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.Session, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, customErrors.NewInvalidArgument(err.Error())
	}

	ok, err := a.verifier.Verify(ctx, in.Username, in.Password)
	if err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		a.log.Info("login rejected", zap.String("user", hashUser(in.Username)))
		return model.Session{}, customErrors.ErrInvalidCredentials
	}

	token, exp, jti, err := a.jwtUtil.GenerateAccessToken(in.Username)
	if err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}

	a.log.Info("login accepted", zap.String("user", hashUser(in.Username)), zap.Time("expiry", exp))

	return model.Session{
		Username: in.Username,
		Token:    token,
		Expiry:   exp,
		JTI:      jti,
	}, nil
}

func (a *authService) Authenticate(ctx context.Context, token string) (model.Principal, error) {
	claims, err := a.jwtUtil.ValidateAccessToken(token)
	if err != nil {
		return model.Principal{}, customErrors.ErrInvalidToken
	}

	if a.tokenRepo != nil {
		revoked, err := a.tokenRepo.IsRevoked(ctx, claims.ID)
		if err != nil {
			return model.Principal{}, customErrors.WrapInternal(err, "IsRevoked")
		}
		if revoked {
			return model.Principal{}, customErrors.ErrInvalidToken
		}
	}

	p := model.Principal{Subject: claims.Subject, JTI: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

func (a *authService) Logout(ctx context.Context, token string) error {
	p, err := a.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	if a.tokenRepo == nil {
		a.log.Warn("logout without revocation store, token stays valid until expiry",
			zap.String("jti", p.JTI))
		return nil
	}

	if err := a.tokenRepo.Revoke(ctx, p.JTI, p.ExpiresAt); err != nil {
		return customErrors.WrapInternal(err, "Revoke")
	}
	a.log.Info("token revoked", zap.String("jti", p.JTI))
	return nil
}

func hashUser(username string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(username)))
}
