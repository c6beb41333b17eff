package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mayabazar/booking-api/api"
)

const (
	ErrRequired        = "is required"
	ErrInvalidEmail    = "must be a valid email address"
	ErrMinValue        = "must be at least %s"
	ErrMaxValue        = "must be at most %s"
	ErrGreaterThan     = "must be greater than %s"
	ErrMinItems        = "must contain at least %s item(s)"
	ErrMaxItems        = "must contain at most %s item(s)"
	ErrAlpha           = "must contain only letters"
	ErrInvalidPassword = "must be between 8 and 25 characters long and include at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character (!@#$%^&*)"
	ErrInvalidPhone     = "must be a valid phone number"
	ErrInvalidSeatType  = "must be one of classic, premium, recliner"
	ErrInvalidShowtime  = "must be a time of day in HH:MM format"
	ErrInvalidLatitude  = "must be a latitude between -90 and 90"
	ErrInvalidLongitude = "must be a longitude between -180 and 180"
	ErrInvalidNumber    = "must be a number"
	ErrInvalidValue     = "is invalid"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
	phoneRgx      = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("phone", validatePhone)
	validator.RegisterValidation("seat_type", validateSeatType)
	validator.RegisterValidation("showtime", validateShowtime)

	return validator
}

func validateSeatType(fl validator.FieldLevel) bool {
	seatType, ok := fl.Field().Interface().(api.SeatType)
	if !ok {
		return false
	}

	return seatType == api.Classic || seatType == api.Premium || seatType == api.Recliner
}

func validateShowtime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRgx.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrInvalidEmail
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "min", "gte":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf(ErrMaxItems, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gtefield":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "alpha":
		return ErrAlpha
	case "password":
		return ErrInvalidPassword
	case "phone":
		return ErrInvalidPhone
	case "seat_type":
		return ErrInvalidSeatType
	case "showtime":
		return ErrInvalidShowtime
	case "latitude":
		return ErrInvalidLatitude
	case "longitude":
		return ErrInvalidLongitude
	default:
		return ErrInvalidValue
	}
}
