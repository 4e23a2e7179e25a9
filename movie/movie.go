package movie

import "moviebuffs/errs"

var ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")

// Sortable movie properties, named as they appear in the JSON representation.
const (
	SortByID          = "id"
	SortByTitle       = "title"
	SortByReleaseYear = "releaseYear"
	SortByRuntime     = "runtime"
)

// SortableProperties lists the properties a movie listing may be ordered by.
var SortableProperties = []string{SortByID, SortByTitle, SortByReleaseYear, SortByRuntime}

// GenreSortByName is the only property genres are listed by.
const GenreSortByName = "name"

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Tagline     string  `json:"tagline"`
	ReleaseYear int     `json:"releaseYear"`
	Runtime     int     `json:"runtime"`
	PosterPath  string  `json:"posterPath"`
	Genres      []Genre `json:"genres"`
}

// HasGenre reports whether the movie is tagged with the genre id.
func (m Movie) HasGenre(genreID int64) bool {
	for _, g := range m.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}
