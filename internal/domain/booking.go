package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SeatType string

const (
	SeatTypeClassic  SeatType = "classic"
	SeatTypePremium  SeatType = "premium"
	SeatTypeRecliner SeatType = "recliner"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ShowtimeLayout is the canonical clock format stored with a booking.
const ShowtimeLayout = "15:04"

// One loyalty point is awarded per pointsRate currency units spent.
var pointsRate = decimal.NewFromInt(10)

type Showtime struct {
	Date time.Time
	Time string
}

// SeatSelection is a seat as requested by the client. Price is whatever the
// client sent and is never used for charging.
type SeatSelection struct {
	Row        string
	SeatNumber int
	SeatType   SeatType
	Price      decimal.NullDecimal
}

// BookedSeat is stored as part of the booking document.
type BookedSeat struct {
	Row        string          `json:"row"`
	SeatNumber int             `json:"seatNumber"`
	SeatType   SeatType        `json:"seatType"`
	Price      decimal.Decimal `json:"price"`
}

type BookingRequest struct {
	UserID       int
	MovieID      int
	TheaterID    int
	ScreenNumber int
	Showtime     Showtime
	Seats        []SeatSelection
}

type Booking struct {
	ID            int
	Reference     uuid.UUID
	UserID        int
	MovieID       int
	TheaterID     int
	ScreenNumber  int
	Showtime      Showtime
	Seats         []BookedSeat
	TotalAmount   decimal.Decimal
	PaymentStatus PaymentStatus
	BookingStatus BookingStatus
	PointsEarned  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookingSummary is a booking expanded with the movie and theater it refers to.
type BookingSummary struct {
	Booking
	MovieTitle      string
	MoviePosterUrl  string
	TheaterName     string
	TheaterLocation TheaterLocation
}

// NewBooking prices the requested seats from the theater's screen price table
// and derives the total and the loyalty award.
func NewBooking(req BookingRequest, theater *Theater) (*Booking, error) {
	if len(req.Seats) == 0 {
		return nil, ErrNoSeats
	}

	clock, err := CanonicalShowtime(req.Showtime.Time)
	if err != nil {
		return nil, err
	}

	screen, ok := theater.Screen(req.ScreenNumber)
	if !ok {
		return nil, fmt.Errorf("%w: screen %d", ErrScreenNotFound, req.ScreenNumber)
	}

	seats, err := priceSeats(screen, req.Seats)
	if err != nil {
		return nil, err
	}

	total := TotalAmount(seats)

	return &Booking{
		Reference:     uuid.New(),
		UserID:        req.UserID,
		MovieID:       req.MovieID,
		TheaterID:     theater.ID,
		ScreenNumber:  screen.ScreenNumber,
		Showtime:      Showtime{Date: req.Showtime.Date, Time: clock},
		Seats:         seats,
		TotalAmount:   total,
		PaymentStatus: PaymentStatusPending,
		BookingStatus: BookingStatusConfirmed,
		PointsEarned:  PointsFor(total),
	}, nil
}

// CanonicalShowtime parses a time of day and returns it zero-padded, so every
// spelling of the same showtime claims the same seats.
func CanonicalShowtime(value string) (string, error) {
	t, err := time.Parse(ShowtimeLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidShowtime, value)
	}

	return t.Format(ShowtimeLayout), nil
}

func priceSeats(screen *Screen, selections []SeatSelection) ([]BookedSeat, error) {
	seats := make([]BookedSeat, len(selections))
	seen := make(map[string]bool, len(selections))

	for i, sel := range selections {
		row := strings.ToUpper(strings.TrimSpace(sel.Row))

		if !screen.contains(row, sel.SeatNumber) {
			return nil, fmt.Errorf("%w: row %s seat %d", ErrSeatOutOfRange, row, sel.SeatNumber)
		}

		key := fmt.Sprintf("%s-%d", row, sel.SeatNumber)
		if seen[key] {
			return nil, fmt.Errorf("%w: row %s seat %d", ErrDuplicateSeat, row, sel.SeatNumber)
		}
		seen[key] = true

		price, ok := screen.PriceFor(sel.SeatType)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSeatTypeUnavailable, sel.SeatType)
		}

		seats[i] = BookedSeat{
			Row:        row,
			SeatNumber: sel.SeatNumber,
			SeatType:   sel.SeatType,
			Price:      price,
		}
	}

	return seats, nil
}

// contains reports whether the seat exists in the screen layout. A screen
// without a declared layout accepts any positive seat.
func (s *Screen) contains(row string, seatNumber int) bool {
	if seatNumber < 1 || (s.SeatsPerRow > 0 && seatNumber > s.SeatsPerRow) {
		return false
	}

	idx, ok := RowIndex(row)
	if !ok {
		return false
	}

	return s.Rows <= 0 || idx < s.Rows
}

// RowIndex maps a row label to its zero-based position: A=0, Z=25, AA=26.
func RowIndex(label string) (int, bool) {
	if label == "" {
		return 0, false
	}

	idx := 0
	for _, ch := range label {
		if ch < 'A' || ch > 'Z' {
			return 0, false
		}
		idx = idx*26 + int(ch-'A'+1)
	}

	return idx - 1, true
}

func TotalAmount(seats []BookedSeat) decimal.Decimal {
	total := decimal.Zero

	for _, seat := range seats {
		total = total.Add(seat.Price)
	}

	return total
}

// PointsFor returns floor(total / 10), truncated toward zero.
func PointsFor(total decimal.Decimal) int {
	return int(total.Div(pointsRate).IntPart())
}

type BookingRepository interface {
	Settle(ctx context.Context, booking *Booking) error
	GetSummariesByUserId(ctx context.Context, userId int) ([]BookingSummary, error)
	GetSummaryByIdAndUserId(ctx context.Context, id, userId int) (*BookingSummary, error)
	Cancel(ctx context.Context, id, userId int) (*Booking, error)
}
