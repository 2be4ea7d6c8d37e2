package server

import (
	"context"
	"errors"
	"net"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	libraryv1 "github.com/Miraines/MoonyAndStarry/library-service/api/library/v1"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/grpc/middleware"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/config"
)

const (
	grpcRPS   = 50
	grpcBurst = 100
)

// NewGRPCServer builds the gRPC server with the interceptor chain, the book
// service, the health service and metrics. TLS is used when configured.
func NewGRPCServer(
	cfg *config.Config,
	handler libraryv1.BookServiceServer,
	auth middleware.Authenticator,
	logger *zap.Logger,
) (*grpc.Server, *health.Server, error) {
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(middleware.ChainUnaryServer(logger, grpcRPS, grpcBurst, auth)),
	}
	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	grpcServer := grpc.NewServer(opts...)

	libraryv1.RegisterBookServiceServer(grpcServer, handler)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(libraryv1.BookService_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	grpc_prometheus.Register(grpcServer)
	grpc_prometheus.EnableHandlingTimeHistogram()

	return grpcServer, healthSrv, nil
}

// StartGRPCServer serves until ctx is cancelled, then stops gracefully with
// a 5 second timeout.
func StartGRPCServer(
	ctx context.Context,
	cfg *config.Config,
	handler libraryv1.BookServiceServer,
	auth middleware.Authenticator,
	logger *zap.Logger,
) error {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return err
	}

	grpcServer, healthSrv, err := NewGRPCServer(cfg, handler, auth, logger)
	if err != nil {
		_ = lis.Close()
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddress))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("ctx cancelled, stopping gRPC server…")
	healthSrv.Shutdown()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-stopCtx.Done():
		grpcServer.Stop()
	case <-done:
	}
	logger.Info("gRPC server stopped")
	return nil
}
