package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/hocus-focus/config"
	"github.com/oksasatya/hocus-focus/internal/bootstrap"
	"github.com/oksasatya/hocus-focus/internal/container"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/store"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
	"github.com/oksasatya/hocus-focus/internal/router"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
	"github.com/oksasatya/hocus-focus/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	infra, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open infrastructure: %v", err)
	}
	defer infra.Close()

	st := store.New(infra.Backend, logger)
	if err := st.InitAll(ctx); err != nil {
		log.Fatalf("failed to initialize collections: %v", err)
	}
	if cfg.SeedOnStart {
		if err := st.SeedAll(ctx); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		if stats, err := st.Stats(ctx); err != nil {
			logger.WithError(err).Warn("reading collection stats failed")
		} else {
			logger.WithField("stats", stats).Info("demo data ready")
		}
	}

	// Membership events are optional; the board works without a broker.
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQMembershipQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, membership events disabled")
		} else {
			defer pub.Close()
			container.SetEvents(pub)
		}
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(st)
	if infra.Redis != nil {
		container.SetRedis(infra.Redis)
	}
	container.SetSessions(infra.Sessions(cfg))
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
