package app

import (
	"errors"
	"net/http"

	"github.com/mayabazar/booking-api/api"
	"github.com/mayabazar/booking-api/internal/domain"
)

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.contextGetLogger(r).Error("User ID in session but not found in DB", "userId", userId)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toUserResponse(user *domain.User) api.UserResponse {
	resp := api.UserResponse{
		Id:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Points:     user.Points,
		Membership: api.Membership(user.Membership),
		Version:    user.Version,
		CreatedAt:  user.CreatedAt,
	}

	if user.Location.City != "" || user.Location.Coordinates != nil {
		resp.Location = &api.UserLocation{City: user.Location.City}

		if c := user.Location.Coordinates; c != nil {
			resp.Location.Coordinates = &api.Coordinates{Lat: c.Lat, Lng: c.Lng}
		}
	}

	p := user.Preferences
	if len(p.FavoriteGenres) > 0 || p.PreferredLanguage != "" || p.BudgetRange != (domain.BudgetRange{}) {
		resp.Preferences = &api.Preferences{
			FavoriteGenres:    p.FavoriteGenres,
			PreferredLanguage: p.PreferredLanguage,
		}

		if p.BudgetRange != (domain.BudgetRange{}) {
			resp.Preferences.BudgetRange = &api.BudgetRange{Min: p.BudgetRange.Min, Max: p.BudgetRange.Max}
		}
	}

	return resp
}
