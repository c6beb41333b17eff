package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/mayabazar/booking-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const theatersCacheKey = "theaters:all"

// CachedTheaterRepository serves the theater list from Redis and falls back to
// the wrapped repository on a miss. Single theater lookups always go to the
// wrapped repository so bookings are priced against current data.
type CachedTheaterRepository struct {
	next   domain.TheaterRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedTheaterRepository(
	next domain.TheaterRepository,
	client redis.UniversalClient,
	ttl time.Duration,
	logger *slog.Logger) *CachedTheaterRepository {

	return &CachedTheaterRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedTheaterRepository) GetAll(ctx context.Context) ([]domain.Theater, error) {
	data, err := c.client.Get(ctx, theatersCacheKey).Bytes()
	if err == nil {
		var theaters []domain.Theater
		if err := json.Unmarshal(data, &theaters); err == nil {
			return theaters, nil
		}

		c.logger.WarnContext(ctx, "discarding malformed theater cache entry")
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "theater cache unavailable", "error", err)
	}

	theaters, err := c.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(theaters)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, theatersCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to populate theater cache", "error", err)
	}

	return theaters, nil
}

func (c *CachedTheaterRepository) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	return c.next.GetById(ctx, id)
}

// Invalidate drops the cached theater list.
func (c *CachedTheaterRepository) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, theatersCacheKey).Err()
}
