package httpserver

import (
	"net/http"
	"strconv"

	"moviebuffs/errs"
	"moviebuffs/movie"

	"github.com/labstack/echo/v4"
)

// MoviesResponse is the JSON form of a page of movies.
type MoviesResponse struct {
	Content       []movie.Movie `json:"content"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	IsFirst       bool          `json:"isFirst"`
	IsLast        bool          `json:"isLast"`
	HasNext       bool          `json:"hasNext"`
	HasPrevious   bool          `json:"hasPrevious"`
}

func NewMoviesResponse(p movie.Page[movie.Movie]) MoviesResponse {
	content := p.Content
	if content == nil {
		content = []movie.Movie{}
	}
	return MoviesResponse{
		Content:       content,
		PageNumber:    p.Number,
		PageSize:      p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		IsFirst:       p.IsFirst(),
		IsLast:        p.IsLast(),
		HasNext:       p.HasNext(),
		HasPrevious:   p.HasPrevious(),
	}
}

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
	g.GET("/genres", s.handleListGenres)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Page through the catalog, optionally restricted to one genre
// @Tags movies
// @Produce json
// @Param genre query string false "Genre slug"
// @Param page query int false "Zero-based page number" default(0)
// @Param size query int false "Page size" default(25)
// @Param sort query []string false "prop[,prop][,asc|desc]; properties: id, title, releaseYear, runtime" collectionFormat(multi)
// @Success 200 {object} MoviesResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	validator, ok := c.Echo().Validator.(*CustomValidator)
	if !ok {
		validator = NewValidator()
	}
	req := bindListMoviesRequest(c, validator)
	s.logger().Infow("fetching movies", "genre", req.Genre, "requested_page", req.Page, "requested_size", req.Size)

	page, err := s.MovieService.ListMovies(c.Request().Context(), req.Genre, req.ToPageRequest())
	if err != nil {
		return err
	}

	s.logger().Infow("returning movies",
		"genre", req.Genre,
		"page", page.Number,
		"size", page.Size,
		"count", len(page.Content),
		"total", page.TotalElements,
	)
	return c.JSON(http.StatusOK, NewMoviesResponse(page))
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Fetch one movie by id; unknown ids answer 404 with an empty body
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} movie.Movie
// @Failure 404
// @Failure 500 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	m, err := s.MovieService.GetMovieByID(c.Request().Context(), id)
	if errs.ErrorCode(err) == errs.ENOTFOUND {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

// handleListGenres godoc
// @Summary List Genres
// @Description All genres ordered by name
// @Tags genres
// @Produce json
// @Success 200 {array} movie.Genre
// @Failure 500 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	genres, err := s.MovieService.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, genres)
}
