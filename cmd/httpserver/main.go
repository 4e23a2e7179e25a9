package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviebuffs/dynamodb"
	"moviebuffs/httpserver"
	"moviebuffs/movie"
	"moviebuffs/pkg/config"
	"moviebuffs/pkg/logger"
	"moviebuffs/pkg/sentry"
	"moviebuffs/postgres"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

// @title MovieBuffs API
// @version 1.0
// @description Read-only movie catalog: paged movie listings, movie details and genres.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		log.Fatalw("cannot open catalog store", "driver", cfg.DB.Driver, "error", err)
	}

	movieService := movie.NewUsecase(repo, movie.PageDefaults{
		Size:    cfg.Paging.DefaultSize,
		MaxSize: cfg.Paging.MaxSize,
		Sort:    movie.By(movie.SortByTitle, movie.ASC),
	})
	server, err := httpserver.New(cfg,
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movieService),
	)
	if err != nil {
		log.Fatalw("cannot create server", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "driver", cfg.DB.Driver)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
			sentry.Error(err)
		}
		return
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}

func newRepository(ctx context.Context, cfg *config.Config) (movie.Repository, error) {
	switch cfg.DB.Driver {
	case config.DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamoOptions(cfg))
		if err != nil {
			return nil, err
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable, cfg.DynamoDB.GenresTable), nil
	default:
		db, err := postgres.NewConnection(postgresOptions(cfg))
		if err != nil {
			return nil, err
		}
		return postgres.NewMovieRepository(db), nil
	}
}

func postgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}

func dynamoOptions(cfg *config.Config) dynamodb.Options {
	return dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	}
}
