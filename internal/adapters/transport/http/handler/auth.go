package handler

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/service"
)

type Auth struct {
	svc appsvc.Service
	log *zap.Logger
}

func NewAuth(svc appsvc.Service, log *zap.Logger) *Auth {
	return &Auth{svc: svc, log: log}
}

func (a *Auth) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	a.log.Info("/login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Username)))),
	)

	sess, err := a.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		Username: sess.Username,
		Token:    sess.Token,
		Expiry:   sess.Expiry,
	})
}

// Logout revokes the bearer token of the request. It runs behind JWTAuth.
func (a *Auth) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.String(http.StatusUnauthorized, "Invalid Token")
		return
	}
	if err := a.svc.Logout(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
