package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/model"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Principal, error)
}

// AuthInterceptor requires "authorization: Bearer <token>" metadata on every
// call whose full method does not start with one of the public prefixes.
func AuthInterceptor(auth Authenticator, public ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		for _, prefix := range public {
			if strings.HasPrefix(info.FullMethod, prefix) {
				return handler(ctx, req)
			}
		}

		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "Missing Authorization Header")
		}

		fields := strings.Fields(values[0])
		if len(fields) != 2 || fields[0] != "Bearer" {
			return nil, status.Error(codes.Unauthenticated, "Invalid Token")
		}

		p, err := auth.Authenticate(ctx, fields[1])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "Unauthorized: Invalid Token")
		}
		return handler(model.WithPrincipal(ctx, p), req)
	}
}
