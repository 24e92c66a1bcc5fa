package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/repository"
)

const statsCacheKey = "intake:stats"

// StatsService aggregates the admin dashboard counters. Results are cached
// in Redis for a short TTL since the admin panel polls them.
type StatsService interface {
	Stats(ctx context.Context) (dto.StatsResult, error)
}

type statsService struct {
	applicants repository.ApplicantRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewStatsService constructs the dashboard aggregation. The cache client
// may be nil, in which case every call hits the store.
func NewStatsService(applicants repository.ApplicantRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) StatsService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}

	return &statsService{
		applicants: applicants,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger.With().Str("component", "stats_service").Logger(),
	}
}

func (s *statsService) Stats(ctx context.Context) (dto.StatsResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var result dto.StatsResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		}
	}

	result, err := s.aggregate(ctx)
	if err != nil {
		return dto.StatsResult{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("stats cache write failed")
			}
		}
	}

	return result, nil
}

func (s *statsService) aggregate(ctx context.Context) (dto.StatsResult, error) {
	var result dto.StatsResult
	var err error

	if result.RegistradosMujeres, err = s.applicants.CountBySexo(ctx, false, "Femenino"); err != nil {
		return dto.StatsResult{}, err
	}
	if result.RegistradosHombres, err = s.applicants.CountBySexo(ctx, false, "Masculino"); err != nil {
		return dto.StatsResult{}, err
	}
	if result.RecibidosMujeres, err = s.applicants.CountBySexo(ctx, true, "Femenino"); err != nil {
		return dto.StatsResult{}, err
	}
	if result.RecibidosHombres, err = s.applicants.CountBySexo(ctx, true, "Masculino"); err != nil {
		return dto.StatsResult{}, err
	}
	if result.PorArea, err = s.applicants.CountByArea(ctx); err != nil {
		return dto.StatsResult{}, err
	}

	return result, nil
}
