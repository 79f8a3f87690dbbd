package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vsbank-api/internal/application/account"
	"github.com/vsbank-api/internal/application/auth"
	"github.com/vsbank-api/internal/application/credit"
	"github.com/vsbank-api/internal/config"
	"github.com/vsbank-api/internal/fixture"
	"github.com/vsbank-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/vsbank-api/internal/infrastructure/jwt"
	"github.com/vsbank-api/internal/infrastructure/memory"
	redisinfra "github.com/vsbank-api/internal/infrastructure/redis"
	s3infra "github.com/vsbank-api/internal/infrastructure/s3"
	"github.com/vsbank-api/internal/infrastructure/smtp"
	"github.com/vsbank-api/internal/infrastructure/sns"
	"github.com/vsbank-api/internal/pkg/latency"
	transporthttp "github.com/vsbank-api/internal/transport/http"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newLogger(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(ctx context.Context, cfg *config.Config) error {
	clock := latency.Real()

	fx, err := loadFixture(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Fixture.RebaseDates {
		fx = fx.Rebase(clock.Now())
	}

	authDeps := auth.ServiceDeps{
		Fixture: fx,
		Clock:   clock,
		Delays:  cfg.Latency,
		Auth:    cfg.Auth,
	}

	// Token ledger: Redis when configured so several instances share it.
	if cfg.RedisAddr != "" {
		client, err := redisinfra.New(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				slog.Warn("redis close", "err", err)
			}
		}()
		authDeps.Ledger = redisinfra.NewLedger(client)
	} else {
		authDeps.Ledger = memory.NewLedger(clock.Now)
	}

	switch cfg.RegistrationStore {
	case config.RegistrationStoreMemory:
		authDeps.Registrations = memory.NewRegistrations()
	case config.RegistrationStoreDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoRegistrationsTable)
		authDeps.Registrations = dynamo.NewRegistrationRepo(client, cfg.DynamoRegistrationsTable)
	}

	if cfg.JWTEnabled() {
		p, err := jwtinfra.NewProvider(cfg)
		if err != nil {
			return err
		}
		authDeps.Signer = p
	}

	if cfg.SNSTopicARN != "" {
		client, err := sns.NewClient(ctx, cfg)
		if err != nil {
			return err
		}
		authDeps.Publisher = sns.NewPublisher(client, cfg.SNSTopicARN)
	}

	if cfg.SMTPHost != "" {
		authDeps.Mailer = smtp.NewMailer(cfg)
	}

	authSvc := auth.NewService(authDeps)
	deps := &transporthttp.Deps{
		Auth: authSvc,
		Account: account.NewService(account.ServiceDeps{
			Fixture:  fx,
			Clock:    clock,
			Delays:   cfg.Latency,
			Sessions: authSvc,
		}),
		Credit: credit.NewService(credit.ServiceDeps{
			Sessions:           authSvc,
			DefaultMonthlyRate: cfg.Credit.DefaultMonthlyRate,
			MaxAmount:          cfg.Credit.MaxAmount,
		}),
	}

	router, stopRouter := transporthttp.NewRouter(cfg, deps)
	defer stopRouter()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv,
			"strict_tokens", cfg.Auth.StrictTokens, "registration_store", cfg.RegistrationStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func loadFixture(ctx context.Context, cfg *config.Config) (*fixture.Fixture, error) {
	src := fixture.Source{File: cfg.Fixture.File, S3Key: cfg.Fixture.S3Key}
	if cfg.Fixture.S3Key != "" {
		client, err := s3infra.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		src.Objects = s3infra.NewStore(client, cfg.S3BucketName)
	}
	return src.Load(ctx)
}
