// @title           Car Wash Portal API
// @version         1.0
// @description     Browser-facing API of the car wash booking portal. It keeps the
// @description     session, the booking wizard and access rules, and relays data to
// @description     the booking backend.
// @BasePath        /
// @securityDefinitions.apikey SessionCookie
// @in              cookie
// @name            cw_session
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"

	_ "github.com/SofiaGenchi/carwash-frontend/docs"
	"github.com/SofiaGenchi/carwash-frontend/internal/api"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/service"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/config"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/db/mongo"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/db/redis"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/gateway"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/mailer"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/queue"
	"github.com/SofiaGenchi/carwash-frontend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "carwash-frontend",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	checkers := []ports.HealthChecker{redis.Pinger{Client: rdb}}

	// Booking attempts are audited to Mongo; with auditing off both the sink
	// and the history reader stay nil interfaces.
	var (
		auditSink ports.AuditSink
		auditRepo ports.AuditRepository
	)
	if cfg.Audit.Enabled {
		mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "carwash-frontend",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(dctx)
		}()

		repo := mongo.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create audit indexes")
		}
		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, repo, log)
		dispatcher.Start(ctx)

		auditSink, auditRepo = dispatcher, repo
		checkers = append(checkers, mongo.Pinger{Client: mongoClient})
	}

	loc, _ := cfg.Location()
	roster, _ := cfg.Roster()

	gw := gateway.New(gateway.Config{BaseURL: cfg.Gateway.BaseURL, Timeout: cfg.Gateway.Timeout}, log)
	store := service.NewSessionStore(redis.NewSessionRepository(rdb, cfg.Session.TTL), log)
	gate := service.NewAccessGate(store, cfg.Session.LogoutDelay, log)

	e := api.NewRouter(api.Dependencies{
		Sessions: store,
		Gate:     gate,
		Auth:     service.NewAuthService(gw, store, gate, mailer.NewLogMailer(log), log),
		Booking: service.NewBookingService(gw,
			redis.NewFlowRepository(rdb, cfg.Session.FlowTTL),
			redis.NewSubmitGuard(rdb),
			auditSink, log,
			service.WithLocation(loc),
			service.WithRoster(roster),
		),
		Appointments: service.NewAppointmentService(gw, log),
		Admin:        service.NewAdminService(gw, auditRepo, log),
		Checkers:     checkers,
	}, api.Options{
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
		SecureCookie:  cfg.Session.Secure,
		Swagger:       !cfg.IsProduction(),
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("gateway", cfg.Gateway.BaseURL).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
