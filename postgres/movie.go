package postgres

import (
	"context"
	"errors"
	"fmt"

	"moviebuffs/errs"
	"moviebuffs/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GenreModel represents the database model for genres
type GenreModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Slug string `gorm:"not null;uniqueIndex"`
}

func (GenreModel) TableName() string {
	return "genres"
}

// MovieModel represents the database model for movies. Ids come from the
// imported dataset, so they are not generated.
type MovieModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Title       string `gorm:"not null"`
	Overview    string `gorm:"not null;default:''"`
	Tagline     string `gorm:"not null;default:''"`
	ReleaseYear int    `gorm:"not null;default:0"`
	Runtime     int    `gorm:"not null;default:0"`
	PosterPath  string `gorm:"not null;default:''"`

	Genres []GenreModel `gorm:"many2many:movie_genres;joinForeignKey:MovieID;joinReferences:GenreID"`
}

func (MovieModel) TableName() string {
	return "movies"
}

// MovieGenreModel is a row of the movie_genres join table.
type MovieGenreModel struct {
	MovieID int64 `gorm:"primaryKey"`
	GenreID int64 `gorm:"primaryKey"`
}

func (MovieGenreModel) TableName() string {
	return "movie_genres"
}

func (m GenreModel) toGenre() movie.Genre {
	return movie.Genre{ID: m.ID, Name: m.Name, Slug: m.Slug}
}

func (m MovieModel) toMovie() movie.Movie {
	genres := make([]movie.Genre, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = g.toGenre()
	}
	return movie.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		Tagline:     m.Tagline,
		ReleaseYear: m.ReleaseYear,
		Runtime:     m.Runtime,
		PosterPath:  m.PosterPath,
		Genres:      genres,
	}
}

var movieSortColumns = map[string]string{
	movie.SortByID:          "id",
	movie.SortByTitle:       "title",
	movie.SortByReleaseYear: "release_year",
	movie.SortByRuntime:     "runtime",
}

// MovieRepository implements movie.Repository on PostgreSQL.
type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindMovieByID(ctx context.Context, id int64) (movie.Movie, bool, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Preload("Genres", orderGenresByName).Take(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return movie.Movie{}, false, nil
	}
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("postgres: find movie %d: %w", id, err)
	}
	return model.toMovie(), true, nil
}

func (r *MovieRepository) FindMovies(ctx context.Context, req movie.PageRequest) (movie.Page[movie.Movie], error) {
	return r.findPage(ctx, req, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *MovieRepository) FindMoviesByGenre(ctx context.Context, genreID int64, req movie.PageRequest) (movie.Page[movie.Movie], error) {
	return r.findPage(ctx, req, r.inGenre(genreID))
}

func (r *MovieRepository) FindGenreBySlug(ctx context.Context, slug string) (movie.Genre, bool, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).Take(&model, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return movie.Genre{}, false, nil
	}
	if err != nil {
		return movie.Genre{}, false, fmt.Errorf("postgres: find genre %q: %w", slug, err)
	}
	return model.toGenre(), true, nil
}

func (r *MovieRepository) FindAllGenres(ctx context.Context, sort movie.Sort) ([]movie.Genre, error) {
	q := r.db.WithContext(ctx)
	for _, o := range sort {
		if o.Property != movie.GenreSortByName {
			return nil, errs.Errorf(errs.EINVALID, "unsupported genre sort property %q", o.Property)
		}
		q = q.Order(clause.OrderByColumn{Column: foldedColumn("genres", "name"), Desc: o.Desc()})
	}

	var models []GenreModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("postgres: list genres: %w", err)
	}

	genres := make([]movie.Genre, len(models))
	for i, m := range models {
		genres[i] = m.toGenre()
	}
	return genres, nil
}

// findPage runs the count and the page query over the same filter scope.
func (r *MovieRepository) findPage(ctx context.Context, req movie.PageRequest, filter func(*gorm.DB) *gorm.DB) (movie.Page[movie.Movie], error) {
	orders, err := movieOrders(req.Sort)
	if err != nil {
		return movie.Page[movie.Movie]{}, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Scopes(filter).Count(&total).Error; err != nil {
		return movie.Page[movie.Movie]{}, fmt.Errorf("postgres: count movies: %w", err)
	}
	if req.Size <= 0 || int64(req.Offset()) >= total {
		return movie.NewPage[movie.Movie](nil, req, total), nil
	}

	q := r.db.WithContext(ctx).Model(&MovieModel{}).Scopes(filter).Preload("Genres", orderGenresByName)
	for _, o := range orders {
		q = q.Order(o)
	}

	var models []MovieModel
	if err := q.Limit(req.Limit()).Offset(req.Offset()).Find(&models).Error; err != nil {
		return movie.Page[movie.Movie]{}, fmt.Errorf("postgres: list movies: %w", err)
	}

	movies := make([]movie.Movie, len(models))
	for i, m := range models {
		movies[i] = m.toMovie()
	}
	return movie.NewPage(movies, req, total), nil
}

func (r *MovieRepository) inGenre(genreID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := r.db.Model(&MovieGenreModel{}).Select("movie_id").Where("genre_id = ?", genreID)
		return db.Where("movies.id IN (?)", sub)
	}
}

func orderGenresByName(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: foldedColumn("genres", "name")}).Order("genres.id")
}

// foldedColumn orders text case-insensitively and by code point, matching
// movie.SortMovies and movie.SortGenres regardless of the database locale.
func foldedColumn(table, column string) clause.Column {
	return clause.Column{Name: fmt.Sprintf(`LOWER(%s.%s) COLLATE "C"`, table, column), Raw: true}
}

func movieOrders(sort movie.Sort) ([]clause.OrderByColumn, error) {
	sort = sort.WithTiebreak(movie.SortByID)
	orders := make([]clause.OrderByColumn, 0, len(sort))
	for _, o := range sort {
		column, ok := movieSortColumns[o.Property]
		if !ok {
			return nil, errs.Errorf(errs.EINVALID, "unsupported sort property %q", o.Property)
		}
		col := clause.Column{Table: "movies", Name: column}
		if o.Property == movie.SortByTitle {
			col = foldedColumn("movies", column)
		}
		orders = append(orders, clause.OrderByColumn{Column: col, Desc: o.Desc()})
	}
	return orders, nil
}
