package stats

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	serviceName = "stats"
)

type StatsRepository interface {
	IncGroupViews(ctx context.Context, id string) (int64, error)
	GetGroupViews(ctx context.Context, id string) (int64, error)
}

type statsService struct {
	repo StatsRepository
	log  *slog.Logger
}

func NewStatsService(repo StatsRepository, log *slog.Logger) *statsService {
	return &statsService{
		repo: repo,
		log:  log.With(slog.String("service", serviceName)),
	}
}

// View counts one gallery render. Best effort: the counter must never get
// in the way of serving the page, so failures are logged and swallowed.
func (s *statsService) View(ctx context.Context, id string) {
	counter, err := s.repo.IncGroupViews(ctx, id)
	if err != nil {
		s.log.Error("Cannot increment group views", slog.String("group_id", id), slog.Any("error", err))

		return
	}

	s.log.Debug("Group viewed", slog.String("group_id", id), slog.Int64("counter", counter))
}

func (s *statsService) Views(ctx context.Context, id string) (int64, error) {
	counter, err := s.repo.GetGroupViews(ctx, id)
	if err != nil {
		s.log.Error("Cannot get group views", slog.String("group_id", id), slog.Any("error", err))

		return 0, fmt.Errorf("cannot get group %s views: %w", id, err)
	}

	return counter, nil
}
