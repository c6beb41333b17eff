package domain

import "errors"

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrSeatAlreadyReserved = errors.New("seat(s) are already reserved")
	ErrScreenNotFound      = errors.New("screen does not exist in the selected theater")
	ErrSeatTypeUnavailable = errors.New("seat type is not sold on the selected screen")
	ErrSeatOutOfRange      = errors.New("seat is outside the screen layout")
	ErrDuplicateSeat       = errors.New("the same seat was selected more than once")
	ErrNoSeats             = errors.New("at least one seat must be selected")
	ErrInvalidShowtime     = errors.New("showtime must be a time of day in HH:MM format")
)
