package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID           int
	Title        string
	Description  string
	Genres       []string
	Languages    []string
	Duration     int
	Rating       MovieRating
	PosterUrl    string
	CastMembers  []string
	ReleaseDate  time.Time
	IsNowShowing bool
}

type MovieRating struct {
	IMDb      decimal.NullDecimal
	UserScore decimal.NullDecimal
}

type MovieFilters struct {
	Pagination
	NowShowing *bool
	Genre      string
	Language   string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
