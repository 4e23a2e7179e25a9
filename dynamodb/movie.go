package dynamodb

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"moviebuffs/errs"
	"moviebuffs/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type genreItem struct {
	ID   int64  `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
	Slug string `dynamodbav:"slug"`
}

type movieItem struct {
	ID          int64   `dynamodbav:"id"`
	Title       string  `dynamodbav:"title"`
	Overview    string  `dynamodbav:"overview,omitempty"`
	Tagline     string  `dynamodbav:"tagline,omitempty"`
	ReleaseYear int     `dynamodbav:"release_year"`
	Runtime     int     `dynamodbav:"runtime"`
	PosterPath  string  `dynamodbav:"poster_path,omitempty"`
	GenreIDs    []int64 `dynamodbav:"genre_ids,numberset,omitempty"`
}

func (g genreItem) toGenre() movie.Genre {
	return movie.Genre{ID: g.ID, Name: g.Name, Slug: g.Slug}
}

func newMovieItem(m movie.Movie) movieItem {
	item := movieItem{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		Tagline:     m.Tagline,
		ReleaseYear: m.ReleaseYear,
		Runtime:     m.Runtime,
		PosterPath:  m.PosterPath,
	}
	for _, g := range m.Genres {
		if !slices.Contains(item.GenreIDs, g.ID) {
			item.GenreIDs = append(item.GenreIDs, g.ID)
		}
	}
	return item
}

// toMovie resolves the genre ids against genres. Ids with no genre are
// skipped; the genres are ordered by name.
func (m movieItem) toMovie(genres map[int64]movie.Genre) movie.Movie {
	out := movie.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		Tagline:     m.Tagline,
		ReleaseYear: m.ReleaseYear,
		Runtime:     m.Runtime,
		PosterPath:  m.PosterPath,
		Genres:      []movie.Genre{},
	}
	for _, id := range m.GenreIDs {
		if g, ok := genres[id]; ok {
			out.Genres = append(out.Genres, g)
		}
	}
	movie.SortGenres(out.Genres, movie.By(movie.GenreSortByName, movie.ASC))
	return out
}

// MovieRepository implements movie.Repository on DynamoDB. Both tables are
// keyed by a numeric id; listings are scanned and then sorted and paged in
// memory, which suits catalogs of a few thousand titles.
type MovieRepository struct {
	client      *dynamodb.Client
	moviesTable string
	genresTable string
}

func NewMovieRepository(client *dynamodb.Client, moviesTable, genresTable string) *MovieRepository {
	return &MovieRepository{
		client:      client,
		moviesTable: moviesTable,
		genresTable: genresTable,
	}
}

func (r *MovieRepository) FindMovieByID(ctx context.Context, id int64) (movie.Movie, bool, error) {
	if err := validateTable(r.moviesTable); err != nil {
		return movie.Movie{}, false, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.moviesTable),
		Key:       map[string]types.AttributeValue{"id": numberValue(id)},
	})
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("dynamodb: get movie %d: %w", id, err)
	}
	if out.Item == nil {
		return movie.Movie{}, false, nil
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, false, fmt.Errorf("dynamodb: unmarshal movie %d: %w", id, err)
	}

	genres, err := r.genresByID(ctx)
	if err != nil {
		return movie.Movie{}, false, err
	}
	return item.toMovie(genres), true, nil
}

func (r *MovieRepository) FindMovies(ctx context.Context, req movie.PageRequest) (movie.Page[movie.Movie], error) {
	return r.findPage(ctx, req, &dynamodb.ScanInput{TableName: aws.String(r.moviesTable)})
}

func (r *MovieRepository) FindMoviesByGenre(ctx context.Context, genreID int64, req movie.PageRequest) (movie.Page[movie.Movie], error) {
	return r.findPage(ctx, req, &dynamodb.ScanInput{
		TableName:        aws.String(r.moviesTable),
		FilterExpression: aws.String("contains(genre_ids, :gid)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gid": numberValue(genreID),
		},
	})
}

func (r *MovieRepository) FindGenreBySlug(ctx context.Context, slug string) (movie.Genre, bool, error) {
	if err := validateTable(r.genresTable); err != nil {
		return movie.Genre{}, false, err
	}

	items, err := scanAll[genreItem](ctx, r.client, &dynamodb.ScanInput{
		TableName:                aws.String(r.genresTable),
		FilterExpression:         aws.String("#slug = :slug"),
		ExpressionAttributeNames: map[string]string{"#slug": "slug"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":slug": &types.AttributeValueMemberS{Value: slug},
		},
	})
	if err != nil {
		return movie.Genre{}, false, err
	}
	if len(items) == 0 {
		return movie.Genre{}, false, nil
	}
	return items[0].toGenre(), true, nil
}

func (r *MovieRepository) FindAllGenres(ctx context.Context, sort movie.Sort) ([]movie.Genre, error) {
	for _, o := range sort {
		if o.Property != movie.GenreSortByName {
			return nil, errs.Errorf(errs.EINVALID, "unsupported genre sort property %q", o.Property)
		}
	}

	genres, err := r.allGenres(ctx)
	if err != nil {
		return nil, err
	}
	movie.SortGenres(genres, sort)
	return genres, nil
}

func (r *MovieRepository) findPage(ctx context.Context, req movie.PageRequest, input *dynamodb.ScanInput) (movie.Page[movie.Movie], error) {
	if err := validateTable(r.moviesTable); err != nil {
		return movie.Page[movie.Movie]{}, err
	}
	for _, o := range req.Sort {
		if !slices.Contains(movie.SortableProperties, o.Property) {
			return movie.Page[movie.Movie]{}, errs.Errorf(errs.EINVALID, "unsupported sort property %q", o.Property)
		}
	}

	items, err := scanAll[movieItem](ctx, r.client, input)
	if err != nil {
		return movie.Page[movie.Movie]{}, err
	}
	genres, err := r.genresByID(ctx)
	if err != nil {
		return movie.Page[movie.Movie]{}, err
	}

	movies := make([]movie.Movie, len(items))
	for i, item := range items {
		movies[i] = item.toMovie(genres)
	}
	movie.SortMovies(movies, req.Sort)
	return movie.PageOf(movies, req), nil
}

func (r *MovieRepository) allGenres(ctx context.Context) ([]movie.Genre, error) {
	if err := validateTable(r.genresTable); err != nil {
		return nil, err
	}

	items, err := scanAll[genreItem](ctx, r.client, &dynamodb.ScanInput{TableName: aws.String(r.genresTable)})
	if err != nil {
		return nil, err
	}

	genres := make([]movie.Genre, len(items))
	for i, item := range items {
		genres[i] = item.toGenre()
	}
	return genres, nil
}

func (r *MovieRepository) genresByID(ctx context.Context) (map[int64]movie.Genre, error) {
	genres, err := r.allGenres(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]movie.Genre, len(genres))
	for _, g := range genres {
		byID[g.ID] = g
	}
	return byID, nil
}

func numberValue(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}
