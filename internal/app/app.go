package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayabazar/booking-api/internal/config"
	"github.com/mayabazar/booking-api/internal/domain"
	"github.com/mayabazar/booking-api/internal/handler"
	"github.com/mayabazar/booking-api/internal/mailer"
	"github.com/mayabazar/booking-api/internal/metrics"
	appmiddleware "github.com/mayabazar/booking-api/internal/middleware"
	"github.com/mayabazar/booking-api/internal/repository"
	appvalidator "github.com/mayabazar/booking-api/internal/validator"
	"github.com/mayabazar/booking-api/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         config.Config
	logger         *slog.Logger
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	metrics        *metrics.Metrics
	healthcheck    *handler.HealthcheckHandler

	userRepo    domain.UserRepository
	movieRepo   domain.MovieRepository
	theaterRepo domain.TheaterRepository
	bookingRepo domain.BookingRepository
}

func NewApp(
	cfg config.Config,
	logger *slog.Logger,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	metrics *metrics.Metrics,
	userRepo domain.UserRepository,
	movieRepo domain.MovieRepository,
	theaterRepo domain.TheaterRepository,
	bookingRepo domain.BookingRepository,
) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		metrics:        metrics,
		healthcheck:    handler.NewHealthcheckHandler(cfg),
		userRepo:       userRepo,
		movieRepo:      movieRepo,
		theaterRepo:    theaterRepo,
		bookingRepo:    bookingRepo,
	}
}

func Run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	if cfg.DisplayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(os.Stdout, nil),
		otelslog.NewHandler(serviceName),
	))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	theaterRepo := repository.NewCachedTheaterRepository(
		repository.NewPostgresTheaterRepository(db),
		redisClient,
		cfg.TheaterCacheTTL,
		logger,
	)

	// Rows may have changed while the service was down.
	err = theaterRepo.Invalidate(context.Background())
	if err != nil {
		logger.Warn("failed to reset theater cache", "error", err)
	}

	app := NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		metrics.New(),
		userRepo,
		movieRepo,
		theaterRepo,
		bookingRepo,
	)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	return sessionManager
}

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := redisotel.InstrumentTracing(rdb)
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConnIdleTime = cfg.DB.MaxIdleTime
	poolConfig.MaxConns = int32(cfg.DB.MaxOpenConns)
	poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(appmiddleware.NotFoundHandler)
	r.MethodNotAllowed(appmiddleware.MethodNotAllowedHandler)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.metrics.Instrument)
	r.Use(appmiddleware.RequestLogger(app.logger))
	r.Use(appmiddleware.RecoverPanic(app.logger))
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.healthcheck.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPIDocument)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.Login)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Post("/logout", app.Logout)
			r.Get("/me", app.GetCurrentUser)
		})
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Get("/{movieId}", app.GetMovieById)
	})

	r.Route("/theaters", func(r chi.Router) {
		r.Get("/", app.GetTheaters)
		r.Get("/nearby", app.GetNearbyTheaters)
		r.Get("/{theaterId}", app.GetTheaterById)
	})

	r.With(app.requireAuthentication).Route("/bookings", func(r chi.Router) {
		r.Post("/", app.CreateBooking)
		r.Get("/my-bookings", app.GetUserBookings)
		r.Get("/{bookingId}", app.GetUserBookingById)
		r.Put("/cancel/{bookingId}", app.CancelBooking)
	})

	return r
}
