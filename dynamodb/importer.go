package dynamodb

import (
	"context"
	"fmt"
	"time"

	"moviebuffs/movie"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// maxBatchWrite is the BatchWriteItem request limit.
	maxBatchWrite = 25

	maxUnprocessedRetries = 5
)

// CatalogImporter writes a dataset into the movies and genres tables. Genres
// must carry their ids; items with an existing id are replaced.
type CatalogImporter struct {
	client      *dynamodb.Client
	moviesTable string
	genresTable string
}

func NewCatalogImporter(client *dynamodb.Client, moviesTable, genresTable string) *CatalogImporter {
	return &CatalogImporter{
		client:      client,
		moviesTable: moviesTable,
		genresTable: genresTable,
	}
}

func (im *CatalogImporter) Import(ctx context.Context, genres []movie.Genre, movies []movie.Movie) error {
	if err := validateTable(im.genresTable); err != nil {
		return err
	}
	if err := validateTable(im.moviesTable); err != nil {
		return err
	}

	known := make(map[int64]bool, len(genres))
	genreWrites := make([]types.WriteRequest, 0, len(genres))
	for _, g := range genres {
		if g.ID <= 0 {
			return fmt.Errorf("dynamodb: genre %q has no id", g.Slug)
		}
		known[g.ID] = true
		av, err := attributevalue.MarshalMap(genreItem{ID: g.ID, Name: g.Name, Slug: g.Slug})
		if err != nil {
			return fmt.Errorf("dynamodb: marshal genre %q: %w", g.Slug, err)
		}
		genreWrites = append(genreWrites, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}

	movieWrites := make([]types.WriteRequest, 0, len(movies))
	for _, m := range movies {
		item := newMovieItem(m)
		for _, id := range item.GenreIDs {
			if !known[id] {
				return fmt.Errorf("dynamodb: movie %d references unknown genre %d", m.ID, id)
			}
		}
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("dynamodb: marshal movie %d: %w", m.ID, err)
		}
		movieWrites = append(movieWrites, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}

	if err := im.writeAll(ctx, im.genresTable, genreWrites); err != nil {
		return err
	}
	return im.writeAll(ctx, im.moviesTable, movieWrites)
}

func (im *CatalogImporter) writeAll(ctx context.Context, table string, writes []types.WriteRequest) error {
	for start := 0; start < len(writes); start += maxBatchWrite {
		end := min(start+maxBatchWrite, len(writes))
		pending := map[string][]types.WriteRequest{table: writes[start:end]}

		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt > maxUnprocessedRetries {
				return fmt.Errorf("dynamodb: write %s: unprocessed items after %d retries", table, maxUnprocessedRetries)
			}
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Duration(attempt*100) * time.Millisecond):
				}
			}

			out, err := im.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("dynamodb: write %s: %w", table, err)
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}
