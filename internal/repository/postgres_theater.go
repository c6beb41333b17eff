package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayabazar/booking-api/internal/domain"
)

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

const selectTheater = `SELECT id, name, address, city, latitude, longitude, screens, facilities, rating, created_at
	FROM theaters`

// GetAll returns every theater in insertion order. The nearby ranking relies on
// this order to break distance ties.
func (p *PostgresTheaterRepository) GetAll(ctx context.Context) ([]domain.Theater, error) {
	rows, err := p.db.Query(ctx, selectTheater+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0)

	for rows.Next() {
		theater, err := scanTheater(rows)
		if err != nil {
			return nil, err
		}

		theaters = append(theaters, *theater)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return theaters, nil
}

func (p *PostgresTheaterRepository) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	theater, err := scanTheater(p.db.QueryRow(ctx, selectTheater+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return theater, nil
}

func scanTheater(row pgx.Row) (*domain.Theater, error) {
	var theater domain.Theater
	var screensJson json.RawMessage

	err := row.Scan(
		&theater.ID,
		&theater.Name,
		&theater.Location.Address,
		&theater.Location.City,
		&theater.Location.Coordinates.Lat,
		&theater.Location.Coordinates.Lng,
		&screensJson,
		&theater.Facilities,
		&theater.Rating,
		&theater.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(screensJson) > 0 {
		if err := json.Unmarshal(screensJson, &theater.Screens); err != nil {
			return nil, err
		}
	}

	return &theater, nil
}
