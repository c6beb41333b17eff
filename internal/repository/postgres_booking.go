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

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

const bookingColumns = `b.id, b.reference, b.user_id, b.movie_id, b.theater_id, b.screen_number,
	b.showtime_date, b.showtime_time, b.seats, b.total_amount, b.payment_status,
	b.booking_status, b.points_earned, b.created_at, b.updated_at`

// Settle stores the booking, claims its seats for the showtime and credits
// the loyalty points to the user. Either all three happen or none does.
func (p *PostgresBookingRepository) Settle(ctx context.Context, booking *domain.Booking) error {
	seatsJson, err := json.Marshal(booking.Seats)
	if err != nil {
		return err
	}

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (
				reference, user_id, movie_id, theater_id, screen_number, showtime_date,
				showtime_time, seats, total_amount, payment_status, booking_status, points_earned)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserID,
			booking.MovieID,
			booking.TheaterID,
			booking.ScreenNumber,
			booking.Showtime.Date,
			booking.Showtime.Time,
			seatsJson,
			booking.TotalAmount,
			booking.PaymentStatus,
			booking.BookingStatus,
			booking.PointsEarned).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

		if err != nil {
			return mapConstraintError(err)
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{
				booking.ID,
				booking.TheaterID,
				booking.ScreenNumber,
				booking.Showtime.Date,
				booking.Showtime.Time,
				seat.Row,
				seat.SeatNumber,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "theater_id", "screen_number", "showtime_date", "showtime_time", "seat_row", "seat_number"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return mapConstraintError(err)
		}

		query = `
			UPDATE users
			SET points = points + $1, updated_at = NOW(), version = version + 1
			WHERE id = $2
		`

		tag, err := tx.Exec(ctx, query, booking.PointsEarned, booking.UserID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresBookingRepository) GetSummariesByUserId(ctx context.Context, userId int) ([]domain.BookingSummary, error) {
	query := `
		SELECT ` + bookingColumns + `,
			m.title, m.poster_url, t.name, t.address, t.city, t.latitude, t.longitude
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN theaters t ON b.theater_id = t.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`

	rows, err := p.db.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)

	for rows.Next() {
		summary, err := scanBookingSummary(rows)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, *summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (p *PostgresBookingRepository) GetSummaryByIdAndUserId(
	ctx context.Context,
	id,
	userId int) (*domain.BookingSummary, error) {

	query := `
		SELECT ` + bookingColumns + `,
			m.title, m.poster_url, t.name, t.address, t.city, t.latitude, t.longitude
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN theaters t ON b.theater_id = t.id
		WHERE b.id = $1 AND b.user_id = $2
	`

	summary, err := scanBookingSummary(p.db.QueryRow(ctx, query, id, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return summary, nil
}

// Cancel marks the caller's booking as cancelled and releases its seats.
// Amount and earned points are left untouched.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, id, userId int) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings AS b
			SET booking_status = $3, updated_at = NOW()
			WHERE b.id = $1 AND b.user_id = $2
			RETURNING ` + bookingColumns

		var err error
		booking, err = scanBooking(tx.QueryRow(ctx, query, id, userId, domain.BookingStatusCancelled))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, id)

		return err
	})

	if err != nil {
		return nil, err
	}

	return booking, nil
}

func scanBooking(row pgx.Row, extra ...any) (*domain.Booking, error) {
	var booking domain.Booking
	var seatsJson json.RawMessage

	dest := []any{
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.MovieID,
		&booking.TheaterID,
		&booking.ScreenNumber,
		&booking.Showtime.Date,
		&booking.Showtime.Time,
		&seatsJson,
		&booking.TotalAmount,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&booking.PointsEarned,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if len(seatsJson) > 0 {
		if err := json.Unmarshal(seatsJson, &booking.Seats); err != nil {
			return nil, err
		}
	}

	return &booking, nil
}

func scanBookingSummary(row pgx.Row) (*domain.BookingSummary, error) {
	var summary domain.BookingSummary

	booking, err := scanBooking(
		row,
		&summary.MovieTitle,
		&summary.MoviePosterUrl,
		&summary.TheaterName,
		&summary.TheaterLocation.Address,
		&summary.TheaterLocation.City,
		&summary.TheaterLocation.Coordinates.Lat,
		&summary.TheaterLocation.Coordinates.Lng,
	)
	if err != nil {
		return nil, err
	}

	summary.Booking = *booking

	return &summary, nil
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return domain.ErrSeatAlreadyReserved
	case pgerrcode.ForeignKeyViolation:
		return domain.ErrRecordNotFound
	default:
		return err
	}
}
