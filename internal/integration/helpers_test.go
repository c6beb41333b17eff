package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			cleanValue(v[k])
		}
	case []any:
		for _, item := range v {
			cleanValue(item)
		}
	}
}

func truncateAll(t testing.TB, app *TestApp) {
	_, err := app.DB.Exec(context.Background(),
		"TRUNCATE booking_seats, bookings, theaters, movies, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	require.NoError(t, app.Theaters.Invalidate(context.Background()))
	app.Mailer.Reset()
}

type testUser struct {
	Name     string
	Email    string
	Phone    string
	Password string
	City     string
	Points   int
}

func defaultTestUser() testUser {
	return testUser{
		Name:     TestUserName,
		Email:    TestUserEmail,
		Phone:    TestUserPhone,
		Password: TestUserPassword,
		City:     TestUserCity,
	}
}

func insertTestUser(t testing.TB, app *TestApp, u testUser) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
	require.NoError(t, err)

	var id int
	err = app.DB.QueryRow(context.Background(), `
		INSERT INTO users (name, email, phone, password_hash, city, points)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		u.Name, u.Email, u.Phone, hash, u.City, u.Points,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func userPoints(t testing.TB, app *TestApp, id int) int {
	var points int
	err := app.DB.QueryRow(context.Background(), "SELECT points FROM users WHERE id = $1", id).Scan(&points)
	require.NoError(t, err)

	return points
}

type testMovie struct {
	Title        string
	Description  string
	Genres       []string
	Languages    []string
	Duration     int
	ImdbRating   *string
	PosterUrl    string
	Cast         []string
	ReleaseDate  time.Time
	IsNowShowing bool
}

func defaultTestMovie() testMovie {
	rating := TestMovieRating

	return testMovie{
		Title:        TestMovieTitle,
		Description:  TestMovieDescription,
		Genres:       TestMovieGenres,
		Languages:    TestMovieLanguages,
		Duration:     TestMovieDuration,
		ImdbRating:   &rating,
		PosterUrl:    TestMoviePosterUrl,
		Cast:         TestMovieCast,
		ReleaseDate:  TestMovieReleaseDate,
		IsNowShowing: true,
	}
}

func insertTestMovie(t testing.TB, app *TestApp, m testMovie) int {
	var id int
	err := app.DB.QueryRow(context.Background(), `
		INSERT INTO movies (title, description, genres, languages, duration, imdb_rating, poster_url, cast_members, release_date, is_now_showing)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10)
		RETURNING id`,
		m.Title, m.Description, m.Genres, m.Languages, m.Duration, m.ImdbRating,
		m.PosterUrl, m.Cast, m.ReleaseDate, m.IsNowShowing,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

type testTheater struct {
	Name       string
	Address    string
	City       string
	Lat        float64
	Lng        float64
	Screens    string
	Facilities []string
	Rating     float64
}

func defaultTestTheater() testTheater {
	return testTheater{
		Name:       TestTheaterName,
		Address:    TestTheaterAddress,
		City:       TestTheaterCity,
		Lat:        TestTheaterLat,
		Lng:        TestTheaterLng,
		Screens:    TestTheaterScreens,
		Facilities: []string{"Parking", "Food Court"},
		Rating:     4.5,
	}
}

func insertTestTheater(t testing.TB, app *TestApp, th testTheater) int {
	var id int
	err := app.DB.QueryRow(context.Background(), `
		INSERT INTO theaters (name, address, city, latitude, longitude, screens, facilities, rating)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)
		RETURNING id`,
		th.Name, th.Address, th.City, th.Lat, th.Lng, th.Screens, th.Facilities, th.Rating,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedBookingState inserts the default user, movie and theater, all with id 1.
func seedBookingState(t testing.TB, app *TestApp) {
	truncateAll(t, app)

	insertTestUser(t, app, defaultTestUser())
	insertTestMovie(t, app, defaultTestMovie())
	insertTestTheater(t, app, defaultTestTheater())
}
