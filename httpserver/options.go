package httpserver

import (
	"errors"
	"net/http"

	"moviebuffs/movie"
	"moviebuffs/pkg/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l == nil {
			return errors.New("httpserver: logger is nil")
		}
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		if svc == nil {
			return errors.New("httpserver: movie service is nil")
		}
		s.MovieService = svc
		return nil
	}
}

// New builds the default server for cfg and applies options on top of it.
func New(cfg *config.Config, options ...Options) (*Server, error) {
	s := Default(cfg)
	for _, fn := range options {
		if err := fn(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
