package movie

import (
	"context"
	"strings"
)

type Service interface {
	ListMovies(ctx context.Context, genreSlug string, req PageRequest) (Page[Movie], error)
	GetMovieByID(ctx context.Context, id int64) (Movie, error)
	ListGenres(ctx context.Context) ([]Genre, error)
}

// Repository is the read side of the catalog store. The boolean results
// report whether the looked up record exists.
type Repository interface {
	FindMovieByID(ctx context.Context, id int64) (Movie, bool, error)
	FindMovies(ctx context.Context, req PageRequest) (Page[Movie], error)
	FindMoviesByGenre(ctx context.Context, genreID int64, req PageRequest) (Page[Movie], error)
	FindGenreBySlug(ctx context.Context, slug string) (Genre, bool, error)
	FindAllGenres(ctx context.Context, sort Sort) ([]Genre, error)
}

type Usecase struct {
	r        Repository
	defaults PageDefaults
}

func NewUsecase(r Repository, defaults PageDefaults) *Usecase {
	return &Usecase{r: r, defaults: defaults}
}

// ListMovies returns a page of movies, restricted to a genre when genreSlug
// is not blank. A slug that matches no genre yields an empty page.
func (uc *Usecase) ListMovies(ctx context.Context, genreSlug string, req PageRequest) (Page[Movie], error) {
	req = uc.defaults.Apply(req)

	genreSlug = strings.TrimSpace(genreSlug)
	if genreSlug == "" {
		return uc.r.FindMovies(ctx, req)
	}

	genre, ok, err := uc.r.FindGenreBySlug(ctx, genreSlug)
	if err != nil {
		return Page[Movie]{}, err
	}
	if !ok {
		return EmptyPage[Movie](req), nil
	}
	return uc.r.FindMoviesByGenre(ctx, genre.ID, req)
}

func (uc *Usecase) GetMovieByID(ctx context.Context, id int64) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrMovieNotFound
	}

	m, ok, err := uc.r.FindMovieByID(ctx, id)
	if err != nil {
		return Movie{}, err
	}
	if !ok {
		return Movie{}, ErrMovieNotFound
	}
	return m, nil
}

func (uc *Usecase) ListGenres(ctx context.Context) ([]Genre, error) {
	genres, err := uc.r.FindAllGenres(ctx, By(GenreSortByName, ASC))
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []Genre{}
	}
	return genres, nil
}
