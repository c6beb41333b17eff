package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayabazar/booking-api/internal/domain"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	preferences, err := json.Marshal(user.Preferences)
	if err != nil {
		return err
	}

	var lat, lng *float64
	if c := user.Location.Coordinates; c != nil {
		lat, lng = &c.Lat, &c.Lng
	}

	query := `INSERT INTO users (name, email, phone, password_hash, city, latitude, longitude, preferences, membership)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, points, created_at, updated_at, version`

	err = p.db.QueryRow(ctx,
		query,
		user.Name,
		user.Email,
		user.Phone,
		user.Password.Hash,
		user.Location.City,
		lat,
		lng,
		preferences,
		user.Membership).Scan(&user.ID, &user.Points, &user.CreatedAt, &user.UpdatedAt, &user.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

const selectUser = `SELECT id, name, email, phone, password_hash, city, latitude, longitude,
		preferences, points, membership, created_at, updated_at, version
	FROM users`

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return p.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	return p.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (p *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var lat, lng *float64
	var preferencesJson json.RawMessage

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Password.Hash,
		&user.Location.City,
		&lat,
		&lng,
		&preferencesJson,
		&user.Points,
		&user.Membership,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if lat != nil && lng != nil {
		user.Location.Coordinates = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}

	if len(preferencesJson) > 0 {
		if err := json.Unmarshal(preferencesJson, &user.Preferences); err != nil {
			return nil, err
		}
	}

	return &user, nil
}
