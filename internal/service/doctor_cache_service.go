package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hospital-booking/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	doctorListCacheKey = "doctors:available"
	doctorListCacheTTL = 60 * time.Second

	// Timeout for individual Redis operations
	redisOpTimeout = 5 * time.Second
)

// DoctorCacheService caches the public available-doctor listing in Redis.
// The cache is best-effort: any Redis failure falls through to the
// database and is logged, never surfaced.
type DoctorCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewDoctorCacheService(redisClient *redis.Client, log *logrus.Logger) *DoctorCacheService {
	return &DoctorCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Get returns the cached doctor listing, or (nil, false) on miss or error.
func (s *DoctorCacheService) Get(ctx context.Context) ([]dto.DoctorResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	payload, err := s.redisClient.Get(ctx, doctorListCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read doctor list cache: %+v", err)
		}
		return nil, false
	}

	var doctors []dto.DoctorResponse
	if err := json.Unmarshal(payload, &doctors); err != nil {
		s.log.Warnf("Failed to decode doctor list cache, invalidating: %+v", err)
		s.Invalidate(ctx)
		return nil, false
	}

	return doctors, true
}

// Set stores the doctor listing with a short TTL.
func (s *DoctorCacheService) Set(ctx context.Context, doctors []dto.DoctorResponse) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	payload, err := json.Marshal(doctors)
	if err != nil {
		s.log.Warnf("Failed to encode doctor list cache: %+v", err)
		return
	}

	if err := s.redisClient.Set(ctx, doctorListCacheKey, payload, doctorListCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to write doctor list cache: %+v", err)
	}
}

// Invalidate drops the cached listing. Called after doctor mutations.
func (s *DoctorCacheService) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, doctorListCacheKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate doctor list cache: %+v", err)
	}
}
