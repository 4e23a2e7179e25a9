package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"moviebuffs/movie"

	"github.com/gosimple/slug"
)

// noGenres is the MovieLens placeholder for an unclassified movie.
const noGenres = "(no genres listed)"

var titleYearPattern = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

type csvColumns struct {
	movieID int
	title   int
	genres  int
}

// readCatalog parses a MovieLens movies.csv. Genres get ids in the order they
// first appear. A limit of 0 or less reads every row.
func readCatalog(r io.Reader, limit int) ([]movie.Genre, []movie.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	cols, err := parseMovieCSVHeader(reader)
	if err != nil {
		return nil, nil, err
	}

	var (
		genres  []movie.Genre
		movies  []movie.Movie
		bySlug  = map[string]movie.Genre{}
		seenIDs = map[int64]bool{}
	)
	for limit <= 0 || len(movies) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}

		m, genreNames, ok := parseMovieRecord(record, cols)
		if !ok || seenIDs[m.ID] {
			continue
		}
		seenIDs[m.ID] = true

		for _, name := range genreNames {
			s := slug.Make(name)
			g, known := bySlug[s]
			if !known {
				g = movie.Genre{ID: int64(len(genres) + 1), Name: name, Slug: s}
				bySlug[s] = g
				genres = append(genres, g)
			}
			if !m.HasGenre(g.ID) {
				m.Genres = append(m.Genres, g)
			}
		}
		movies = append(movies, m)
	}

	return genres, movies, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (csvColumns, error) {
	header, err := reader.Read()
	if err != nil {
		return csvColumns{}, fmt.Errorf("read csv header: %w", err)
	}

	cols := csvColumns{movieID: -1, title: -1, genres: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			cols.movieID = i
		case "title":
			cols.title = i
		case "genres":
			cols.genres = i
		}
	}
	if cols.movieID == -1 || cols.title == -1 || cols.genres == -1 {
		return csvColumns{}, errors.New("missing required columns in csv header")
	}

	return cols, nil
}

func parseMovieRecord(record []string, cols csvColumns) (movie.Movie, []string, bool) {
	if cols.movieID >= len(record) || cols.title >= len(record) || cols.genres >= len(record) {
		return movie.Movie{}, nil, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(record[cols.movieID]), 10, 64)
	if err != nil || id <= 0 {
		return movie.Movie{}, nil, false
	}
	title, year := splitTitleYear(strings.TrimSpace(record[cols.title]))
	if title == "" {
		return movie.Movie{}, nil, false
	}

	var genreNames []string
	for _, name := range strings.Split(record[cols.genres], "|") {
		name = strings.TrimSpace(name)
		if name == "" || name == noGenres {
			continue
		}
		genreNames = append(genreNames, name)
	}

	return movie.Movie{ID: id, Title: title, ReleaseYear: year}, genreNames, true
}

// splitTitleYear turns "Heat (1995)" into "Heat" and 1995. Titles without a
// trailing year are returned unchanged with year 0.
func splitTitleYear(title string) (string, int) {
	match := titleYearPattern.FindStringSubmatch(title)
	if match == nil {
		return title, 0
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return title, 0
	}
	return match[1], year
}
