package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"moviebuffs/dynamodb"
	"moviebuffs/movie"
	"moviebuffs/pkg/config"
	"moviebuffs/pkg/logger"
	"moviebuffs/postgres"

	"github.com/alecthomas/kong"
	_ "github.com/lib/pq"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

type CLI struct {
	CSV   string `name:"csv" help:"Path to movies.csv (skip download)." type:"existingfile"`
	URL   string `name:"url" help:"MovieLens zip URL." default:"${movielens_url}"`
	Limit int    `name:"limit" help:"Limit number of rows to import (0 = all)." default:"0"`
}

type catalogImporter interface {
	Import(ctx context.Context, genres []movie.Genre, movies []movie.Movie) error
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("movieseed"),
		kong.Description("Load the MovieLens catalog into the configured store."),
		kong.Vars{"movielens_url": defaultMovieLensURL},
	)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	importer, err := newImporter(ctx, cfg)
	if err != nil {
		log.Fatalw("cannot open catalog store", "driver", cfg.DB.Driver, "error", err)
	}

	csvPath := cli.CSV
	if csvPath == "" {
		log.Infow("downloading dataset", "url", cli.URL)
		path, cleanup, err := downloadAndExtract(ctx, cli.URL)
		if err != nil {
			log.Fatalw("failed to download dataset", "error", err)
		}
		defer cleanup()
		csvPath = path
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalw("cannot open csv", "path", csvPath, "error", err)
	}
	defer file.Close()

	genres, movies, err := readCatalog(file, cli.Limit)
	if err != nil {
		log.Fatalw("cannot read catalog", "path", csvPath, "error", err)
	}

	if err := importer.Import(ctx, genres, movies); err != nil {
		log.Fatalw("import failed", "error", err)
	}

	log.Infow("import completed", "driver", cfg.DB.Driver, "movies", len(movies), "genres", len(genres))
}

func newImporter(ctx context.Context, cfg *config.Config) (catalogImporter, error) {
	switch cfg.DB.Driver {
	case config.DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return dynamodb.NewCatalogImporter(client, cfg.DynamoDB.MoviesTable, cfg.DynamoDB.GenresTable), nil
	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewCatalogImporter(db), nil
	}
}
