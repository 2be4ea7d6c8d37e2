package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/db/orm"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/db/redis"
	myGrpc "github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/grpc"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/handler"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/credentials"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/jwt"
	appsvc "github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/library/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/db"
	lg "github.com/Miraines/MoonyAndStarry/library-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/server"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.LogLevel != os.Getenv("LOG_LEVEL") {
		zapLog = lg.Must(cfg.LogLevel)
		defer zapLog.Sync()
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(rootCtx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to open database", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()

	// revocation is optional, without Redis logout cannot invalidate tokens
	var tokenRepo repo.TokenRepo
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()

		redisRepo := myRedisRepo.NewRedisTokenRepo(redisCli)
		pingCtx, cancel := context.WithTimeout(rootCtx, 3*time.Second)
		if err := redisRepo.Ping(pingCtx); err != nil {
			zapLog.Warn("redis not reachable yet", zap.Error(err))
		}
		cancel()
		tokenRepo = redisRepo
	} else {
		zapLog.Info("REDIS_ADDRESS not set, token revocation disabled")
	}

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}

	validate := validator.New()
	verifier := credentials.NewStatic(cfg.AuthUsername, cfg.AuthPassword, cfg.AuthPasswordHash)
	authSvc := appsvc.New(verifier, tokenRepo, jwtUtil, validate, zapLog)

	books := service.NewBooks(orm.NewBookRepo(gdb), validate, zapLog)
	authors := service.NewAuthors(orm.NewAuthorRepo(gdb), validate, zapLog)
	categories := service.NewCategories(orm.NewCategoryRepo(gdb), validate, zapLog)

	router := handler.NewRouter(handler.Deps{
		Auth:             authSvc,
		Books:            books,
		Authors:          authors,
		Categories:       categories,
		Log:              zapLog,
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
		LoginRPS:         float64(cfg.LoginRPS),
		LoginBurst:       cfg.LoginBurst,
		Ready:            sqlDB.PingContext,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(rootCtx)

	if cfg.GRPCAddress != "" {
		grpcHandler := myGrpc.NewHandler(books, zapLog)
		g.Go(func() error {
			return server.StartGRPCServer(ctx, cfg, grpcHandler, authSvc, zapLog)
		})
	}

	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddress), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		zapLog.Info("shutdown signal received")

		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			zapLog.Error("shutdown error", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
