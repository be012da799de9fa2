package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/config"
	"github.com/yukikurage/property-management-api/internal/constants"
	"github.com/yukikurage/property-management-api/internal/database"
	"github.com/yukikurage/property-management-api/internal/handlers"
	"github.com/yukikurage/property-management-api/internal/logger"
	"github.com/yukikurage/property-management-api/internal/metrics"
	"github.com/yukikurage/property-management-api/internal/middleware"
	"github.com/yukikurage/property-management-api/internal/repository"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "property-management-api")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	store := repository.NewStore(db)
	m := metrics.New()

	var drafter services.ReminderDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		log.Info("Reminder drafting enabled")
	}
	svc := services.New(store, log, m, drafter)

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err), zap.String("store", cfg.SessionStore))
	}

	r := newEngine(cfg, log, m, sessionStore)
	handlers.RegisterRoutes(r, handlers.NewHandlers(db, svc, log))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server exited")
}

// newEngine installs the middleware chain and the /metrics endpoint.
// Metrics sits outside Recovery so recovered panics are counted as 500s.
func newEngine(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, sessionStore sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Metrics(m),
		middleware.Recovery(log, !cfg.IsProduction()),
		sessions.Sessions(constants.SessionCookieName, sessionStore),
	)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	return r
}

// newSessionStore builds the cookie store by default or the Redis store
// when SESSION_STORE=redis.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(10, "tcp", redisAddr, "", "", []byte(cfg.SessionSecret))
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
