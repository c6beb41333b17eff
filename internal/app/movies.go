package app

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mayabazar/booking-api/api"
	"github.com/mayabazar/booking-api/internal/domain"
	appvalidator "github.com/mayabazar/booking-api/internal/validator"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, field, ok := parseMoviesParams(r.URL.Query())
	if !ok {
		app.fieldValidationResponse(w, r, field, appvalidator.ErrInvalidValue)
		return
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIdParam(r, "movieId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// parseMoviesParams returns the name of the first parameter that is not of
// the expected type.
func parseMoviesParams(query url.Values) (api.GetMoviesParams, string, bool) {
	var params api.GetMoviesParams

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return params, "page", false
		}
		params.Page = &page
	}

	if v := query.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return params, "pageSize", false
		}
		params.PageSize = &pageSize
	}

	if v := query.Get("nowShowing"); v != "" {
		nowShowing, err := strconv.ParseBool(v)
		if err != nil {
			return params, "nowShowing", false
		}
		params.NowShowing = &nowShowing
	}

	if v := query.Get("sort"); v != "" {
		params.Sort = &v
	}
	if v := query.Get("term"); v != "" {
		params.Term = &v
	}
	if v := query.Get("genre"); v != "" {
		params.Genre = &v
	}
	if v := query.Get("language"); v != "" {
		params.Language = &v
	}

	return params, "", true
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
		},
		NowShowing: params.NowShowing,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}
	if params.Genre != nil {
		filters.Genre = *params.Genre
	}
	if params.Language != nil {
		filters.Language = *params.Language
	}

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = api.MovieSummary{
			Id:           movie.ID,
			Title:        movie.Title,
			PosterUrl:    movie.PosterUrl,
			Genres:       nonNil(movie.Genres),
			Languages:    nonNil(movie.Languages),
			ReleaseDate:  types.Date{Time: movie.ReleaseDate},
			IsNowShowing: movie.IsNowShowing,
		}
	}

	return summaries
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genres:      nonNil(movie.Genres),
		Languages:   nonNil(movie.Languages),
		Duration:    movie.Duration,
		Rating: api.MovieRating{
			Imdb:      nullDecimalPtr(movie.Rating.IMDb),
			UserScore: nullDecimalPtr(movie.Rating.UserScore),
		},
		PosterUrl:    movie.PosterUrl,
		Cast:         nonNil(movie.CastMembers),
		ReleaseDate:  types.Date{Time: movie.ReleaseDate},
		IsNowShowing: movie.IsNowShowing,
	}
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}

	return &d.Decimal
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
