package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/model"
	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
)

const (
	// SubjectKey holds the validated token subject in the gin context.
	SubjectKey = "auth.subject"
	// JTIKey holds the validated token id in the gin context.
	JTIKey = "auth.jti"

	msgMissingHeader = "Missing Authorization Header"
	msgBadHeader     = "Invalid Token"
	msgUnauthorized  = "Unauthorized: Invalid Token"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Principal, error)
}

// JWTAuth rejects requests that do not carry a valid bearer token with a
// plain-text 401. Accepted requests see the principal in both the gin and
// the request context.
func JWTAuth(auth Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, present := c.Request.Header[http.CanonicalHeaderKey("Authorization")]
		if !present || len(values) == 0 {
			c.String(http.StatusUnauthorized, msgMissingHeader)
			c.Abort()
			return
		}

		token, ok := BearerToken(values[0])
		if !ok {
			c.String(http.StatusUnauthorized, msgBadHeader)
			c.Abort()
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if customErrors.IsInternal(err) {
				log.Error("token check failed", zap.Error(err))
			}
			c.String(http.StatusUnauthorized, msgUnauthorized)
			c.Abort()
			return
		}

		c.Set(SubjectKey, p.Subject)
		c.Set(JTIKey, p.JTI)
		c.Request = c.Request.WithContext(model.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. Anything but exactly two fields with the Bearer scheme fails.
func BearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return "", false
	}
	return fields[1], true
}
