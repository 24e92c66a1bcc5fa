package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/repository"
)

// PresenceService approximates which staff accounts are online right now.
type PresenceService interface {
	Heartbeat(ctx context.Context, username string) error
	ListActive(ctx context.Context) ([]string, error)
}

type presenceService struct {
	repo   repository.PresenceRepository
	window time.Duration
	clock  func() time.Time
	logger zerolog.Logger
}

// NewPresenceService constructs the heartbeat tracker. An account counts
// as active while its last heartbeat is within the liveness window.
func NewPresenceService(repo repository.PresenceRepository, window time.Duration, clock func() time.Time, logger zerolog.Logger) PresenceService {
	if window <= 0 {
		window = 90 * time.Second
	}
	if clock == nil {
		clock = time.Now
	}

	return &presenceService{
		repo:   repo,
		window: window,
		clock:  clock,
		logger: logger.With().Str("component", "presence_service").Logger(),
	}
}

func (s *presenceService) Heartbeat(ctx context.Context, username string) error {
	return s.repo.Upsert(ctx, username, s.clock())
}

func (s *presenceService) ListActive(ctx context.Context) ([]string, error) {
	return s.repo.ListActiveSince(ctx, s.clock().Add(-s.window))
}
