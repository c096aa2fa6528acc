package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/board"
	"github.com/napierala85-collab/kalendarz-soboty/internal/config"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
	"github.com/napierala85-collab/kalendarz-soboty/internal/metrics"
	"github.com/napierala85-collab/kalendarz-soboty/internal/redis"
	"github.com/napierala85-collab/kalendarz-soboty/internal/schedule"
	redisstore "github.com/napierala85-collab/kalendarz-soboty/internal/store/redis"
	"github.com/napierala85-collab/kalendarz-soboty/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	if cfg.SitePassword == "" {
		loggerClient.Warn("site password not configured, /login will answer 500")
	}
	if cfg.AdminPassword == "" {
		loggerClient.Warn("admin password not configured, /admin will answer 500")
	}
	if cfg.JWTSecretInsecure && !cfg.DevMode {
		loggerClient.Warn("session signing secret is the shipped default, sessions are disabled until it is changed")
	}

	settings, err := schedule.LoadSettings(cfg.ScheduleFile)
	if err != nil {
		loggerClient.Errorf("failed to load schedule settings: %v", err)
		os.Exit(1)
	}
	sched, err := schedule.New(settings)
	if err != nil {
		loggerClient.Errorf("invalid schedule settings: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("schedule configured",
		logger.String("horizon", settings.Horizon),
		logger.Int("cutoff_hour", settings.CutoffHour))

	// Fail fast if Redis is unavailable: the board cannot run without it.
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	store := redisstore.NewStore(redisClient)
	ledger := board.NewLedger(store, sched, loggerClient)
	sessions := auth.NewSessions(cfg.JWTSecret, cfg.SessionTTL)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		Ledger:            ledger,
		Sessions:          sessions,
		SitePassword:      cfg.SitePassword,
		AdminPassword:     cfg.AdminPassword,
		JWTSecretInsecure: cfg.JWTSecretInsecure,
		DevMode:           cfg.DevMode,
		RedisClient:       redisClient,
		InternalCIDRS:     cfg.InternalCIDRS,
		TrustProxy:        cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting kalendarz %s on %s", version.Version, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("✅ kalendarz stopped cleanly")
	return nil
}
