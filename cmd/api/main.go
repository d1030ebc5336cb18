package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/zerowaste/connect-share/internal/api"
	"github.com/zerowaste/connect-share/internal/api/handler"
	"github.com/zerowaste/connect-share/internal/core/ports"
	"github.com/zerowaste/connect-share/internal/core/service"
	"github.com/zerowaste/connect-share/internal/infrastructure/db/memory"
	mongodb "github.com/zerowaste/connect-share/internal/infrastructure/db/mongo"
	redisdb "github.com/zerowaste/connect-share/internal/infrastructure/db/redis"
	"github.com/zerowaste/connect-share/internal/infrastructure/db/sqlite"
	"github.com/zerowaste/connect-share/internal/infrastructure/notify"
	"github.com/zerowaste/connect-share/internal/infrastructure/queue"
	"github.com/zerowaste/connect-share/internal/pkg/config"
	"github.com/zerowaste/connect-share/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	idempotencyTTL  = 24 * time.Hour
)

// stores is the persistence selected by STORE_DRIVER plus whatever must be
// closed on shutdown.
type stores struct {
	donations ports.DonationRepository
	users     ports.UserRepository
	checks    []handler.DependencyCheck
	closers   []func(context.Context) error
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "connect-share",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	var idem ports.IdempotencyStore = memory.NewIdempotencyStore(idempotencyTTL)
	if cfg.Redis.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		idem = redisdb.NewIdempotencyStore(rdb, idempotencyTTL)
		st.checks = append(st.checks, handler.RedisCheck(rdb))
		st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis idempotency store enabled")
	}

	sinks := []notify.Sink{notify.NewLogSink(logger.Component("notify"))}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramSink(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Error().Err(err).Msg("telegram disabled: bot init failed")
		} else {
			sinks = append(sinks, tg)
		}
	}

	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, logger.Component("dispatcher"), sinks...)
	// Workers outlive the signal context so Stop can drain queued events.
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	defer cancelDispatch()
	dispatcher.Start(dispatchCtx)

	clock := service.SystemClock{}
	donationSvc := service.NewDonationService(st.donations, idem, dispatcher, clock, logger.Component("donations"))
	statsSvc := service.NewStatsService(st.donations, st.users, clock)
	authSvc := service.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL, clock)

	e := api.NewRouter(api.Deps{
		Donations: donationSvc,
		Stats:     statsSvc,
		Auth:      authSvc,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Checks:    st.checks,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Stop()
	closeAll(shutdownCtx, log, st.closers)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return &stores{
			donations: memory.NewDonationRepository(),
			users:     memory.NewUserRepository(),
		}, nil

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repos, err := mongodb.NewRepositories(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			donations: repos.Donations,
			users:     repos.Users,
			checks:    []handler.DependencyCheck{handler.MongoCheck(db)},
			closers:   []func(context.Context) error{client.Disconnect},
		}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &stores{
			donations: sqlite.NewDonationRepository(db),
			users:     sqlite.NewUserRepository(db),
			checks:    []handler.DependencyCheck{handler.SQLiteCheck(db)},
			closers:   []func(context.Context) error{func(context.Context) error { return db.Close() }},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func closeAll(ctx context.Context, log zerolog.Logger, closers []func(context.Context) error) {
	for _, c := range closers {
		if err := c(ctx); err != nil {
			log.Error().Err(err).Msg("close")
		}
	}
}
