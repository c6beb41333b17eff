package integration_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayabazar/booking-api/internal/app"
	"github.com/mayabazar/booking-api/internal/config"
	"github.com/mayabazar/booking-api/internal/mailer"
	"github.com/mayabazar/booking-api/internal/metrics"
	"github.com/mayabazar/booking-api/internal/repository"
	appvalidator "github.com/mayabazar/booking-api/internal/validator"
	"github.com/stretchr/testify/require"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	Mailer         *mailer.MockMailer
	SessionManager *scs.SessionManager
	Theaters       *repository.CachedTheaterRepository
}

func newTestApp(cfg config.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	theaterRepo := repository.NewCachedTheaterRepository(
		repository.NewPostgresTheaterRepository(db),
		redisClient,
		cfg.TheaterCacheTTL,
		logger,
	)

	application := app.NewApp(
		cfg,
		logger,
		validator,
		mailer,
		sessionManager,
		metrics.New(),
		userRepo,
		movieRepo,
		theaterRepo,
		bookingRepo,
	)

	return &TestApp{
		App:            application,
		DB:             db,
		Mailer:         mailer,
		SessionManager: sessionManager,
		Theaters:       theaterRepo,
	}, nil
}

// sessionCookies stores a session for userId directly in the session store
// and returns the cookie a logged-in browser would send.
func (a *TestApp) sessionCookies(t testing.TB, userId int) []*http.Cookie {
	t.Helper()

	ctx, err := a.SessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	a.SessionManager.Put(ctx, app.SessionKeyUserId.String(), userId)

	token, expiry, err := a.SessionManager.Commit(ctx)
	require.NoError(t, err)

	return []*http.Cookie{{
		Name:    a.SessionManager.Cookie.Name,
		Value:   token,
		Path:    "/",
		Expires: expiry,
	}}
}

func (a *TestApp) authenticatedUserCookies(t testing.TB) []*http.Cookie {
	return a.sessionCookies(t, TestUserId)
}

// waitForEmails polls the mock mailer because emails are sent in the
// background after the response is written.
func (a *TestApp) waitForEmails(t testing.TB, n int) []mailer.Email {
	t.Helper()

	require.Eventually(t, func() bool {
		return len(a.Mailer.GetSentEmails()) >= n
	}, 2*time.Second, 20*time.Millisecond)

	return a.Mailer.GetSentEmails()
}
