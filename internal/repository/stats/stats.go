package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyGroupViews is a HASH mapping group_id to its view counter.
	// HINCRBY keeps the increment atomic across instances.
	KeyGroupViews = "gv"
)

type statsRepository struct {
	cl  *redis.Client
	log *slog.Logger
}

func NewStatsRepository(cl *redis.Client, log *slog.Logger) *statsRepository {
	return &statsRepository{
		cl:  cl,
		log: log.With(slog.String("item", "StatsRepository")),
	}
}

func (r *statsRepository) IncGroupViews(ctx context.Context, id string) (int64, error) {
	counter, err := r.cl.HIncrBy(ctx, KeyGroupViews, id, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("cannot increment group %s views: %w", id, err)
	}

	return counter, nil
}

func (r *statsRepository) GetGroupViews(ctx context.Context, id string) (int64, error) {
	counter, err := r.cl.HGet(ctx, KeyGroupViews, id).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("cannot get group %s views: %w", id, err)
	}

	return counter, nil
}
