package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"moviebuffs/dynamodb"
	"moviebuffs/pkg/config"
	"moviebuffs/pkg/logger"
	"moviebuffs/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

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

	if cfg.DB.Driver == config.DriverDynamoDB {
		migrateDynamoDB(log, cfg)
		return
	}
	migratePostgres(log, cfg)
}

func migratePostgres(log *zap.SugaredLogger, cfg *config.Config) {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Fatalw("cannot connecting to db", "error", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: "migrations",
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalw("cannot get db instance", "error", err)
	}

	total, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	if err != nil {
		log.Fatalw("cannot execute migration", "error", err)
	}

	log.Infow("applied migrations", "total", total)
}

func migrateDynamoDB(log *zap.SugaredLogger, cfg *config.Config) {
	ctx := context.Background()
	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		log.Fatalw("cannot create dynamodb client", "error", err)
	}

	created, err := dynamodb.CreateTables(ctx, client, cfg.DynamoDB.MoviesTable, cfg.DynamoDB.GenresTable)
	if err != nil {
		log.Fatalw("cannot create tables", "created", created, "error", err)
	}

	log.Infow("created tables", "tables", created, "total", len(created))
}
