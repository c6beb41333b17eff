package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayabazar/booking-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), id, title, description, genres, languages,
			duration, poster_url, release_date, is_now_showing
		FROM movies
		WHERE ((to_tsvector('english', title) @@ plainto_tsquery('english', $1) 
			OR to_tsvector('english', description) @@ plainto_tsquery('english', $1))
			OR $1 = '')
		AND (is_now_showing = $2 OR $2 IS NULL)
		AND ($3 = ANY(genres) OR $3 = '')
		AND ($4 = ANY(languages) OR $4 = '')
		ORDER BY %s %s, id ASC
		LIMIT $5 OFFSET $6`, filters.SortColumn(), filters.SortDirection())

	args := []any{
		filters.Term,
		filters.NowShowing,
		filters.Genre,
		filters.Language,
		filters.Limit(),
		filters.Offset(),
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genres,
			&movie.Languages,
			&movie.Duration,
			&movie.PosterUrl,
			&movie.ReleaseDate,
			&movie.IsNowShowing,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT id, title, description, genres, languages, duration, imdb_rating, user_score,
			poster_url, cast_members, release_date, is_now_showing
		FROM movies
		WHERE id = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genres,
		&movie.Languages,
		&movie.Duration,
		&movie.Rating.IMDb,
		&movie.Rating.UserScore,
		&movie.PosterUrl,
		&movie.CastMembers,
		&movie.ReleaseDate,
		&movie.IsNowShowing,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}
