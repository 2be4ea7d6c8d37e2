package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/Miraines/MoonyAndStarry/library-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/library/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Auth       appsvc.Service
	Books      service.Service[model.Book]
	Authors    service.Service[model.Author]
	Categories service.Service[model.Category]
	Log        *zap.Logger

	AllowedOrigins   []string
	AllowCredentials bool
	LoginRPS         float64
	LoginBurst       int

	// Ready reports store health for /health. Nil means always healthy.
	Ready func(ctx context.Context) error
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(d.Log))
	router.Use(middleware.Metrics())

	corsConfig := cors.Config{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: d.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(d.AllowedOrigins) == 0 || (len(d.AllowedOrigins) == 1 && d.AllowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "time": time.Now().Unix()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authH := NewAuth(d.Auth, d.Log)
	api := router.Group("/api")
	api.POST("/auth/login",
		middleware.NewRateLimitPerIP(d.LoginRPS, d.LoginBurst, 10_000, time.Hour),
		authH.Login,
	)

	secured := api.Group("", middleware.JWTAuth(d.Auth, d.Log))
	secured.POST("/auth/logout", authH.Logout)
	RegisterCRUD(secured, "/books", d.Books)
	RegisterCRUD(secured, "/authors", d.Authors)
	RegisterCRUD(secured, "/categories", d.Categories)

	return router
}
