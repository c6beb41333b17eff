package app

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mayabazar/booking-api/api"
	"github.com/mayabazar/booking-api/internal/domain"
	appvalidator "github.com/mayabazar/booking-api/internal/validator"
	"github.com/shopspring/decimal"
)

func (app *Application) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := app.theaterRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheaterListResponse{
		Theaters: make([]api.Theater, len(theaters)),
	}

	for i := range theaters {
		resp.Theaters[i] = toApiTheater(&theaters[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetNearbyTheaters ranks every theater by great-circle distance from the
// given point and keeps those within maxDistance kilometres.
func (app *Application) GetNearbyTheaters(w http.ResponseWriter, r *http.Request) {
	params, field, ok := parseNearbyParams(r.URL.Query())
	if !ok {
		app.fieldValidationResponse(w, r, field, appvalidator.ErrInvalidNumber)
		return
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	maxDistance := domain.DefaultMaxDistanceKm
	if params.MaxDistance != nil {
		maxDistance = *params.MaxDistance
	}

	theaters, err := app.theaterRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	origin := domain.Coordinates{Lat: *params.Lat, Lng: *params.Lng}
	ranked := domain.RankNearby(theaters, origin, maxDistance)

	resp := api.NearbyTheaterListResponse{
		Theaters: make([]api.NearbyTheater, len(ranked)),
	}

	for i := range ranked {
		resp.Theaters[i] = api.NearbyTheater{
			Theater:  toApiTheater(&ranked[i].Theater),
			Distance: ranked[i].Distance,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTheaterById(w http.ResponseWriter, r *http.Request) {
	theaterId, err := app.readIdParam(r, "theaterId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	theater, err := app.theaterRepo.GetById(r.Context(), theaterId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiTheater(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseNearbyParams(query url.Values) (api.GetNearbyTheatersParams, string, bool) {
	var params api.GetNearbyTheatersParams

	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"lat", &params.Lat},
		{"lng", &params.Lng},
		{"maxDistance", &params.MaxDistance},
	} {
		v := query.Get(p.name)
		if v == "" {
			continue
		}

		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, p.name, false
		}

		*p.dst = &f
	}

	return params, "", true
}

func toApiTheater(theater *domain.Theater) api.Theater {
	screens := make([]api.Screen, len(theater.Screens))

	for i, s := range theater.Screens {
		screens[i] = api.Screen{
			ScreenNumber: s.ScreenNumber,
			ScreenType:   string(s.ScreenType),
			TotalSeats:   s.TotalSeats,
			Rows:         s.Rows,
			SeatsPerRow:  s.SeatsPerRow,
			Pricing: api.ScreenPricing{
				Classic:  screenPrice(s, domain.SeatTypeClassic),
				Premium:  screenPrice(s, domain.SeatTypePremium),
				Recliner: screenPrice(s, domain.SeatTypeRecliner),
			},
		}
	}

	return api.Theater{
		Id:         theater.ID,
		Name:       theater.Name,
		Location:   toApiTheaterLocation(theater.Location),
		Screens:    screens,
		Facilities: nonNil(theater.Facilities),
		Rating:     theater.Rating,
	}
}

func toApiTheaterLocation(location domain.TheaterLocation) api.TheaterLocation {
	return api.TheaterLocation{
		Address: location.Address,
		City:    location.City,
		Coordinates: api.Coordinates{
			Lat: location.Coordinates.Lat,
			Lng: location.Coordinates.Lng,
		},
	}
}

func screenPrice(s domain.Screen, seatType domain.SeatType) *decimal.Decimal {
	price, ok := s.PriceFor(seatType)
	if !ok {
		return nil
	}

	return &price
}
