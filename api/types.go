// Package api holds the request and response bodies of the HTTP API described
// in api.yaml.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type Membership string

const (
	Basic  Membership = "basic"
	Silver Membership = "silver"
	Gold   Membership = "gold"
)

type SeatType string

const (
	Classic  SeatType = "classic"
	Premium  SeatType = "premium"
	Recliner SeatType = "recliner"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type Coordinates struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Users

type UserLocation struct {
	City        string       `json:"city,omitempty" validate:"max=100"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type BudgetRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

type Preferences struct {
	FavoriteGenres    []string     `json:"favoriteGenres,omitempty" validate:"max=20,dive,required,max=50"`
	PreferredLanguage string       `json:"preferredLanguage,omitempty" validate:"max=50"`
	BudgetRange       *BudgetRange `json:"budgetRange,omitempty"`
}

type RegisterRequest struct {
	Name        string        `json:"name" validate:"required,max=100"`
	Email       string        `json:"email" validate:"required,email"`
	Password    string        `json:"password" validate:"required,password"`
	Phone       string        `json:"phone" validate:"required,phone"`
	Location    *UserLocation `json:"location,omitempty"`
	Preferences *Preferences  `json:"preferences,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Id          int           `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Location    *UserLocation `json:"location,omitempty"`
	Preferences *Preferences  `json:"preferences,omitempty"`
	Points      int           `json:"points"`
	Membership  Membership    `json:"membership"`
	Version     int           `json:"version"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Movies

type GetMoviesParams struct {
	Page       *int    `validate:"omitempty,min=1"`
	PageSize   *int    `validate:"omitempty,min=1,max=100"`
	Sort       *string `validate:"omitempty,oneof=id title release_date -id -title -release_date"`
	Term       *string `validate:"omitempty,max=100"`
	NowShowing *bool
	Genre      *string `validate:"omitempty,max=50"`
	Language   *string `validate:"omitempty,max=50"`
}

type MovieRating struct {
	Imdb      *decimal.Decimal `json:"imdb,omitempty"`
	UserScore *decimal.Decimal `json:"userScore,omitempty"`
}

type MovieSummary struct {
	Id           int        `json:"id"`
	Title        string     `json:"title"`
	PosterUrl    string     `json:"posterUrl"`
	Genres       []string   `json:"genres"`
	Languages    []string   `json:"languages"`
	ReleaseDate  types.Date `json:"releaseDate"`
	IsNowShowing bool       `json:"isNowShowing"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata"`
}

type MovieResponse struct {
	Id           int         `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Genres       []string    `json:"genres"`
	Languages    []string    `json:"languages"`
	Duration     int         `json:"duration"`
	Rating       MovieRating `json:"rating"`
	PosterUrl    string      `json:"posterUrl"`
	Cast         []string    `json:"cast"`
	ReleaseDate  types.Date  `json:"releaseDate"`
	IsNowShowing bool        `json:"isNowShowing"`
}

// Theaters

type GetNearbyTheatersParams struct {
	Lat         *float64 `validate:"required,latitude"`
	Lng         *float64 `validate:"required,longitude"`
	MaxDistance *float64 `validate:"omitempty,gt=0,max=20000"`
}

type ScreenPricing struct {
	Classic  *decimal.Decimal `json:"classic,omitempty"`
	Premium  *decimal.Decimal `json:"premium,omitempty"`
	Recliner *decimal.Decimal `json:"recliner,omitempty"`
}

type Screen struct {
	ScreenNumber int           `json:"screenNumber"`
	ScreenType   string        `json:"screenType"`
	TotalSeats   int           `json:"totalSeats"`
	Rows         int           `json:"rows"`
	SeatsPerRow  int           `json:"seatsPerRow"`
	Pricing      ScreenPricing `json:"pricing"`
}

type TheaterLocation struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
}

type Theater struct {
	Id         int             `json:"id"`
	Name       string          `json:"name"`
	Location   TheaterLocation `json:"location"`
	Screens    []Screen        `json:"screens"`
	Facilities []string        `json:"facilities"`
	Rating     float64         `json:"rating"`
}

type NearbyTheater struct {
	Theater
	Distance float64 `json:"distance"`
}

type TheaterListResponse struct {
	Theaters []Theater `json:"theaters"`
}

type NearbyTheaterListResponse struct {
	Theaters []NearbyTheater `json:"theaters"`
}

// Bookings

type Showtime struct {
	Date types.Date `json:"date" validate:"required"`
	Time string     `json:"time" validate:"required,showtime"`
}

type SeatSelection struct {
	Row        string           `json:"row" validate:"required,alpha,max=3"`
	SeatNumber int              `json:"seatNumber" validate:"required,min=1"`
	SeatType   SeatType         `json:"seatType" validate:"required,seat_type"`
	Price      *decimal.Decimal `json:"price,omitempty"`
}

type CreateBookingRequest struct {
	Movie        int             `json:"movie" validate:"required,min=1"`
	Theater      int             `json:"theater" validate:"required,min=1"`
	ScreenNumber int             `json:"screenNumber" validate:"required,min=1"`
	Showtime     Showtime        `json:"showtime" validate:"required"`
	Seats        []SeatSelection `json:"seats" validate:"required,min=1,max=10,dive"`
}

type BookedSeat struct {
	Row        string          `json:"row"`
	SeatNumber int             `json:"seatNumber"`
	SeatType   SeatType        `json:"seatType"`
	Price      decimal.Decimal `json:"price"`
}

type Booking struct {
	Id            int             `json:"id"`
	Reference     uuid.UUID       `json:"reference"`
	User          int             `json:"user"`
	Movie         int             `json:"movie"`
	Theater       int             `json:"theater"`
	ScreenNumber  int             `json:"screenNumber"`
	Showtime      Showtime        `json:"showtime"`
	Seats         []BookedSeat    `json:"seats"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus string          `json:"paymentStatus"`
	BookingStatus string          `json:"bookingStatus"`
	PointsEarned  int             `json:"pointsEarned"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CreateBookingResponse struct {
	Message      string  `json:"message"`
	Booking      Booking `json:"booking"`
	PointsEarned int     `json:"pointsEarned"`
}

type BookingMovie struct {
	Id     int    `json:"id"`
	Title  string `json:"title"`
	Poster string `json:"poster"`
}

type BookingTheater struct {
	Id       int             `json:"id"`
	Name     string          `json:"name"`
	Location TheaterLocation `json:"location"`
}

type BookingDetail struct {
	Id            int             `json:"id"`
	Reference     uuid.UUID       `json:"reference"`
	Movie         BookingMovie    `json:"movie"`
	Theater       BookingTheater  `json:"theater"`
	ScreenNumber  int             `json:"screenNumber"`
	Showtime      Showtime        `json:"showtime"`
	Seats         []BookedSeat    `json:"seats"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus string          `json:"paymentStatus"`
	BookingStatus string          `json:"bookingStatus"`
	PointsEarned  int             `json:"pointsEarned"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingDetail `json:"bookings"`
}

type CancelBookingResponse struct {
	Message string  `json:"message"`
	Booking Booking `json:"booking"`
}
