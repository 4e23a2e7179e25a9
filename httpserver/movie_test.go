package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviebuffs/httpserver"
	"moviebuffs/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context, genreSlug string, req movie.PageRequest) (movie.Page[movie.Movie], error) {
	args := m.Called(ctx, genreSlug, req)
	return args.Get(0).(movie.Page[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) GetMovieByID(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) ListGenres(ctx context.Context) ([]movie.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Genre), args.Error(1)
}

var (
	comedy            = movie.Genre{ID: 3, Name: "Comedy", Slug: "comedy"}
	airplane          = movie.Movie{ID: 2, Title: "Airplane!", ReleaseYear: 1980, Runtime: 88, Genres: []movie.Genre{comedy}}
	youngFrankenstein = movie.Movie{ID: 5, Title: "Young Frankenstein", ReleaseYear: 1974, Runtime: 106, Genres: []movie.Genre{comedy}}
)

func newMovieServer() (*httpserver.Server, *MockMovieService) {
	server := httpserver.Default(testConfig())
	svc := new(MockMovieService)
	server.MovieService = svc
	return server, svc
}

func get(server *httpserver.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListMovies(t *testing.T) {
	server, svc := newMovieServer()

	t.Run("should pass an empty request when no params are given", func(t *testing.T) {
		req := movie.PageRequest{}
		applied := movie.PageRequest{Page: 0, Size: 25, Sort: movie.By(movie.SortByTitle, movie.ASC)}
		svc.On("ListMovies", mock.Anything, "", req).
			Return(movie.NewPage([]movie.Movie{airplane, youngFrankenstein}, applied, 2), nil).Once()

		rec := get(server, "/api/movies")

		assert.Equal(t, http.StatusOK, rec.Code)
		page := decodeMoviesPage(t, rec)
		assert.Equal(t, []string{"Airplane!", "Young Frankenstein"}, page.titles())
		assert.Equal(t, 0, page.PageNumber)
		assert.Equal(t, 25, page.PageSize)
		assert.Equal(t, int64(2), page.TotalElements)
		assert.Equal(t, 1, page.TotalPages)
		assert.True(t, page.IsFirst)
		assert.True(t, page.IsLast)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrevious)
		assert.Equal(t, "comedy", page.Content[0].Genres[0].Slug)
		svc.AssertExpectations(t)
	})

	t.Run("should parse genre paging and repeated sort params", func(t *testing.T) {
		req := movie.PageRequest{
			Page: 2,
			Size: 10,
			Sort: movie.Sort{
				{Property: "releaseYear", Direction: movie.DESC},
				{Property: "title", Direction: movie.DESC},
				{Property: "id", Direction: movie.ASC},
			},
		}
		svc.On("ListMovies", mock.Anything, "comedy", req).
			Return(movie.NewPage([]movie.Movie{airplane}, req, 21), nil).Once()

		rec := get(server, "/api/movies?genre=comedy&page=2&size=10&sort=releaseYear,title,DESC&sort=id")

		assert.Equal(t, http.StatusOK, rec.Code)
		page := decodeMoviesPage(t, rec)
		assert.Equal(t, 2, page.PageNumber)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.IsLast)
		assert.True(t, page.HasPrevious)
		svc.AssertExpectations(t)
	})

	t.Run("should fall back to defaults on malformed params", func(t *testing.T) {
		req := movie.PageRequest{Sort: movie.Sort{{Property: "budget", Direction: movie.ASC}}}
		svc.On("ListMovies", mock.Anything, "", req).
			Return(movie.EmptyPage[movie.Movie](movie.PageRequest{Size: 25}), nil).Once()

		rec := get(server, "/api/movies?page=abc&size=-5&sort=budget")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"content":[],"pageNumber":0,"pageSize":25,"totalElements":0,"totalPages":0,
			"isFirst":true,"isLast":true,"hasNext":false,"hasPrevious":false}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should ignore page and size outside the 32-bit range", func(t *testing.T) {
		svc.On("ListMovies", mock.Anything, "", movie.PageRequest{Page: 2}).
			Return(movie.EmptyPage[movie.Movie](movie.PageRequest{Page: 2, Size: 25}), nil).Once()

		rec := get(server, "/api/movies?page=2&size=3000000000")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 25, decodeMoviesPage(t, rec).PageSize)
		svc.AssertExpectations(t)
	})

	t.Run("should ignore an oversized page number", func(t *testing.T) {
		svc.On("ListMovies", mock.Anything, "", movie.PageRequest{Size: 10}).
			Return(movie.EmptyPage[movie.Movie](movie.PageRequest{Size: 10}), nil).Once()

		rec := get(server, "/api/movies?page=9999999999999&size=10")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, decodeMoviesPage(t, rec).PageNumber)
		svc.AssertExpectations(t)
	})

	t.Run("should return 500 when the service fails", func(t *testing.T) {
		svc.On("ListMovies", mock.Anything, "drama", movie.PageRequest{}).
			Return(movie.Page[movie.Movie]{}, errors.New("connection refused")).Once()

		rec := get(server, "/api/movies?genre=drama")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeAPIResponse(t, rec)
		assert.Equal(t, "100500", resp.Code)
		assert.Equal(t, "Internal server error", resp.Message)
		svc.AssertExpectations(t)
	})
}

func TestListMovies_LogsResolvedPage(t *testing.T) {
	server, svc, logs := newObservedMovieServer()

	applied := movie.PageRequest{Page: 0, Size: 25, Sort: movie.By(movie.SortByTitle, movie.ASC)}
	svc.On("ListMovies", mock.Anything, "comedy", movie.PageRequest{}).
		Return(movie.NewPage([]movie.Movie{airplane}, applied, 1), nil).Once()

	rec := get(server, "/api/movies?genre=comedy&page=-3")

	require.Equal(t, http.StatusOK, rec.Code)
	fetching := logs.FilterMessage("fetching movies").All()
	require.Len(t, fetching, 1)
	assert.Equal(t, int64(0), fetching[0].ContextMap()["requested_page"])
	assert.Equal(t, int64(0), fetching[0].ContextMap()["requested_size"])

	returning := logs.FilterMessage("returning movies").All()
	require.Len(t, returning, 1)
	fields := returning[0].ContextMap()
	assert.Equal(t, int64(0), fields["page"])
	assert.Equal(t, int64(25), fields["size"])
	assert.Equal(t, int64(1), fields["count"])
	assert.Equal(t, "comedy", fields["genre"])
	svc.AssertExpectations(t)
}

func TestGetMovie(t *testing.T) {
	server, svc := newMovieServer()

	t.Run("should return the movie", func(t *testing.T) {
		svc.On("GetMovieByID", mock.Anything, int64(2)).Return(airplane, nil).Once()

		rec := get(server, "/api/movies/2")

		assert.Equal(t, http.StatusOK, rec.Code)
		var got movie.Movie
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, airplane, got)
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 with empty body when missing", func(t *testing.T) {
		svc.On("GetMovieByID", mock.Anything, int64(42)).Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := get(server, "/api/movies/42")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 for a non numeric id", func(t *testing.T) {
		rec := get(server, "/api/movies/heat")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertNotCalled(t, "GetMovieByID", mock.Anything, mock.Anything)
	})

	t.Run("should return 500 when the service fails", func(t *testing.T) {
		svc.On("GetMovieByID", mock.Anything, int64(7)).Return(movie.Movie{}, errors.New("timeout")).Once()

		rec := get(server, "/api/movies/7")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestListGenres(t *testing.T) {
	server, svc := newMovieServer()

	t.Run("should return genres as an array", func(t *testing.T) {
		genres := []movie.Genre{{ID: 1, Name: "Action", Slug: "action"}, comedy}
		svc.On("ListGenres", mock.Anything).Return(genres, nil).Once()

		rec := get(server, "/api/genres")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Action","slug":"action"},{"id":3,"name":"Comedy","slug":"comedy"}]`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should return an empty array when there are no genres", func(t *testing.T) {
		svc.On("ListGenres", mock.Anything).Return([]movie.Genre{}, nil).Once()

		rec := get(server, "/api/genres")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestMovieRoutesWithoutService(t *testing.T) {
	server := httpserver.Default(testConfig())

	for _, target := range []string{"/api/movies", "/api/movies/1", "/api/genres"} {
		rec := get(server, target)

		assert.Equal(t, http.StatusNotImplemented, rec.Code, target)
	}
}
