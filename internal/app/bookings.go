package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/mayabazar/booking-api/api"
	"github.com/mayabazar/booking-api/internal/domain"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	MsgBookingConfirmed = "Booking confirmed"
	MsgBookingCancelled = "Booking cancelled successfully"
)

// CreateBooking prices the selected seats, stores the booking and credits the
// loyalty points to the caller in a single settlement.
func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.Movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("booking attempt for unknown movie", "movie_id", input.Movie)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	theater, err := app.theaterRepo.GetById(r.Context(), input.Theater)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("booking attempt for unknown theater", "theater_id", input.Theater)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	booking, err := domain.NewBooking(toBookingRequest(userId, input), theater)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSeats),
			errors.Is(err, domain.ErrInvalidShowtime),
			errors.Is(err, domain.ErrScreenNotFound),
			errors.Is(err, domain.ErrSeatTypeUnavailable),
			errors.Is(err, domain.ErrSeatOutOfRange),
			errors.Is(err, domain.ErrDuplicateSeat):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.bookingRepo.Settle(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyReserved):
			logger.Warn("seat conflict during settlement", "theater_id", booking.TheaterID, "screen", booking.ScreenNumber)
			app.metrics.SeatConflicts.Inc()
			app.seatConflictResponse(w, r)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			logger.Error("failed to settle booking", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.BookingsSettled.Inc()
	app.metrics.PointsAwarded.Add(float64(booking.PointsEarned))
	app.metrics.AmountCharged.Add(booking.TotalAmount.InexactFloat64())

	logger.Info("booking settled",
		"booking_id", booking.ID,
		"total_amount", booking.TotalAmount.String(),
		"points_earned", booking.PointsEarned)

	app.sendBookingConfirmation(r.Context(), booking, movie, theater)

	resp := api.CreateBookingResponse{
		Message:      MsgBookingConfirmed,
		Booking:      toApiBooking(booking),
		PointsEarned: booking.PointsEarned,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	summaries, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: make([]api.BookingDetail, len(summaries)),
	}

	for i := range summaries {
		resp.Bookings[i] = toBookingDetail(&summaries[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingById(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	bookingId, err := app.readIdParam(r, "bookingId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	summary, err := app.bookingRepo.GetSummaryByIdAndUserId(r.Context(), bookingId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingDetail(summary), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking releases the seats of one of the caller's bookings. Bookings
// of other users are reported as missing. Earned points are kept.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	bookingId, err := app.readIdParam(r, "bookingId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	booking, err := app.bookingRepo.Cancel(r.Context(), bookingId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.BookingsCancelled.Inc()

	resp := api.CancelBookingResponse{
		Message: MsgBookingCancelled,
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(
	ctx context.Context,
	booking *domain.Booking,
	movie *domain.Movie,
	theater *domain.Theater) {

	app.background(ctx, "booking confirmation email", func(ctx context.Context) error {
		user, err := app.userRepo.GetById(ctx, booking.UserID)
		if err != nil {
			return err
		}

		data := map[string]any{
			"name":         user.Name,
			"reference":    booking.Reference.String(),
			"movieTitle":   movie.Title,
			"theaterName":  theater.Name,
			"screenNumber": booking.ScreenNumber,
			"showtimeDate": booking.Showtime.Date.Format("2006-01-02"),
			"showtimeTime": booking.Showtime.Time,
			"seats":        booking.Seats,
			"totalAmount":  booking.TotalAmount.StringFixed(2),
			"pointsEarned": booking.PointsEarned,
		}

		return app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
	})
}

func toBookingRequest(userId int, input api.CreateBookingRequest) domain.BookingRequest {
	seats := make([]domain.SeatSelection, len(input.Seats))

	for i, s := range input.Seats {
		seats[i] = domain.SeatSelection{
			Row:        s.Row,
			SeatNumber: s.SeatNumber,
			SeatType:   domain.SeatType(s.SeatType),
		}

		if s.Price != nil {
			seats[i].Price = decimal.NewNullDecimal(*s.Price)
		}
	}

	return domain.BookingRequest{
		UserID:       userId,
		MovieID:      input.Movie,
		TheaterID:    input.Theater,
		ScreenNumber: input.ScreenNumber,
		Showtime: domain.Showtime{
			Date: input.Showtime.Date.Time,
			Time: input.Showtime.Time,
		},
		Seats: seats,
	}
}

func toApiSeats(seats []domain.BookedSeat) []api.BookedSeat {
	apiSeats := make([]api.BookedSeat, len(seats))

	for i, s := range seats {
		apiSeats[i] = api.BookedSeat{
			Row:        s.Row,
			SeatNumber: s.SeatNumber,
			SeatType:   api.SeatType(s.SeatType),
			Price:      s.Price,
		}
	}

	return apiSeats
}

func toApiShowtime(showtime domain.Showtime) api.Showtime {
	return api.Showtime{
		Date: types.Date{Time: showtime.Date},
		Time: showtime.Time,
	}
}

func toApiBooking(booking *domain.Booking) api.Booking {
	return api.Booking{
		Id:            booking.ID,
		Reference:     booking.Reference,
		User:          booking.UserID,
		Movie:         booking.MovieID,
		Theater:       booking.TheaterID,
		ScreenNumber:  booking.ScreenNumber,
		Showtime:      toApiShowtime(booking.Showtime),
		Seats:         toApiSeats(booking.Seats),
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: string(booking.PaymentStatus),
		BookingStatus: string(booking.BookingStatus),
		PointsEarned:  booking.PointsEarned,
		CreatedAt:     booking.CreatedAt,
	}
}

func toBookingDetail(summary *domain.BookingSummary) api.BookingDetail {
	return api.BookingDetail{
		Id:        summary.ID,
		Reference: summary.Reference,
		Movie: api.BookingMovie{
			Id:     summary.MovieID,
			Title:  summary.MovieTitle,
			Poster: summary.MoviePosterUrl,
		},
		Theater: api.BookingTheater{
			Id:       summary.TheaterID,
			Name:     summary.TheaterName,
			Location: toApiTheaterLocation(summary.TheaterLocation),
		},
		ScreenNumber:  summary.ScreenNumber,
		Showtime:      toApiShowtime(summary.Showtime),
		Seats:         toApiSeats(summary.Seats),
		TotalAmount:   summary.TotalAmount,
		PaymentStatus: string(summary.PaymentStatus),
		BookingStatus: string(summary.BookingStatus),
		PointsEarned:  summary.PointsEarned,
		CreatedAt:     summary.CreatedAt,
	}
}
