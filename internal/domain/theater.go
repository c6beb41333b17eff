package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ScreenType string

const (
	ScreenIMAX     ScreenType = "IMAX"
	Screen4DX      ScreenType = "4DX"
	ScreenDolby    ScreenType = "Dolby"
	ScreenStandard ScreenType = "Standard"
	Screen4K       ScreenType = "4K"
)

type Theater struct {
	ID         int
	Name       string
	Location   TheaterLocation
	Screens    []Screen
	Facilities []string
	Rating     float64
	CreatedAt  time.Time
}

type TheaterLocation struct {
	Address     string
	City        string
	Coordinates Coordinates
}

// Screen is stored as a JSON document inside the theater row, hence the tags.
type Screen struct {
	ScreenNumber int           `json:"screenNumber"`
	ScreenType   ScreenType    `json:"screenType"`
	TotalSeats   int           `json:"totalSeats"`
	Rows         int           `json:"rows"`
	SeatsPerRow  int           `json:"seatsPerRow"`
	Pricing      ScreenPricing `json:"pricing"`
}

type ScreenPricing struct {
	Classic  decimal.NullDecimal `json:"classic"`
	Premium  decimal.NullDecimal `json:"premium"`
	Recliner decimal.NullDecimal `json:"recliner"`
}

// Prices are charged in whole minor units, matching the stored booking total.
const priceScale = 2

// PriceFor returns the price of one seat of the given type, rounded to whole
// minor units. Seat types without a configured price are not sold on the
// screen.
func (s Screen) PriceFor(seatType SeatType) (decimal.Decimal, bool) {
	var price decimal.NullDecimal

	switch seatType {
	case SeatTypeClassic:
		price = s.Pricing.Classic
	case SeatTypePremium:
		price = s.Pricing.Premium
	case SeatTypeRecliner:
		price = s.Pricing.Recliner
	}

	if !price.Valid || price.Decimal.IsNegative() {
		return decimal.Zero, false
	}

	return price.Decimal.Round(priceScale), true
}

func (t *Theater) Screen(screenNumber int) (*Screen, bool) {
	for i := range t.Screens {
		if t.Screens[i].ScreenNumber == screenNumber {
			return &t.Screens[i], true
		}
	}

	return nil, false
}

type TheaterRepository interface {
	GetAll(ctx context.Context) ([]Theater, error)
	GetById(ctx context.Context, id int) (*Theater, error)
}
