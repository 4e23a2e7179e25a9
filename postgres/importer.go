package postgres

import (
	"context"
	"fmt"

	"moviebuffs/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 500

// CatalogImporter loads a dataset into the catalog tables. Genres are keyed
// by slug, movies by id; the genres of a movie are matched by slug.
type CatalogImporter struct {
	db *gorm.DB
}

func NewCatalogImporter(db *gorm.DB) *CatalogImporter {
	return &CatalogImporter{db: db}
}

// Import upserts genres and movies in a single transaction and replaces the
// genre links of every imported movie.
func (im *CatalogImporter) Import(ctx context.Context, genres []movie.Genre, movies []movie.Movie) error {
	return im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genreIDs, err := upsertGenres(tx, genres)
		if err != nil {
			return err
		}
		if len(movies) == 0 {
			return nil
		}

		models := make([]MovieModel, len(movies))
		movieIDs := make([]int64, len(movies))
		var links []MovieGenreModel
		for i, m := range movies {
			models[i] = MovieModel{
				ID:          m.ID,
				Title:       m.Title,
				Overview:    m.Overview,
				Tagline:     m.Tagline,
				ReleaseYear: m.ReleaseYear,
				Runtime:     m.Runtime,
				PosterPath:  m.PosterPath,
			}
			movieIDs[i] = m.ID
			for _, g := range m.Genres {
				id, ok := genreIDs[g.Slug]
				if !ok {
					return fmt.Errorf("postgres: movie %d references unknown genre %q", m.ID, g.Slug)
				}
				links = append(links, MovieGenreModel{MovieID: m.ID, GenreID: id})
			}
		}

		err = tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "overview", "tagline", "release_year", "runtime", "poster_path"}),
			}).
			CreateInBatches(&models, importBatchSize).Error
		if err != nil {
			return fmt.Errorf("postgres: upsert movies: %w", err)
		}

		for start := 0; start < len(movieIDs); start += importBatchSize {
			batch := movieIDs[start:min(start+importBatchSize, len(movieIDs))]
			if err := tx.Where("movie_id IN ?", batch).Delete(&MovieGenreModel{}).Error; err != nil {
				return fmt.Errorf("postgres: clear movie genres: %w", err)
			}
		}
		if len(links) == 0 {
			return nil
		}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&links, importBatchSize).Error
		if err != nil {
			return fmt.Errorf("postgres: link movie genres: %w", err)
		}
		return nil
	})
}

func upsertGenres(tx *gorm.DB, genres []movie.Genre) (map[string]int64, error) {
	ids := make(map[string]int64, len(genres))
	for _, g := range genres {
		model := GenreModel{Name: g.Name, Slug: g.Slug}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&model).Error
		if err != nil {
			return nil, fmt.Errorf("postgres: upsert genre %q: %w", g.Slug, err)
		}
		ids[model.Slug] = model.ID
	}
	return ids, nil
}
