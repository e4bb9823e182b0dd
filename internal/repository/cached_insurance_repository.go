package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/observability"
)

// Cache keys for catalog listings. Entries are stored under "<prefix>:<generation>".
const (
	catalogAllKey        = "catalog:insurances:all"
	catalogActiveKey     = "catalog:insurances:active"
	catalogGenerationKey = "catalog:insurances:gen"
)

// cachedInsuranceRepository serves product listings from Redis. Every write bumps the catalog
// generation, so a list loaded before the write can only land under a key nobody reads again.
// Single-product reads always hit the store so intake sees the current active flag.
type cachedInsuranceRepository struct {
	inner   InsuranceRepository
	client  redis.Cmdable
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewCachedInsuranceRepository wraps inner with a listing cache. A nil client disables caching.
func NewCachedInsuranceRepository(inner InsuranceRepository, client redis.Cmdable, ttl time.Duration, logger *zap.Logger, metrics *observability.Metrics) InsuranceRepository {
	if client == nil || ttl <= 0 {
		return inner
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedInsuranceRepository{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (r *cachedInsuranceRepository) Create(ctx context.Context, ins *domain.Insurance) error {
	if err := r.inner.Create(ctx, ins); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedInsuranceRepository) Update(ctx context.Context, ins *domain.Insurance) error {
	if err := r.inner.Update(ctx, ins); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedInsuranceRepository) ToggleActive(ctx context.Context, id string, at time.Time) (*domain.Insurance, error) {
	ins, err := r.inner.ToggleActive(ctx, id, at)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return ins, nil
}

func (r *cachedInsuranceRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedInsuranceRepository) GetByID(ctx context.Context, id string) (*domain.Insurance, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *cachedInsuranceRepository) GetByName(ctx context.Context, name string) (*domain.Insurance, error) {
	return r.inner.GetByName(ctx, name)
}

func (r *cachedInsuranceRepository) ListAll(ctx context.Context) ([]domain.Insurance, error) {
	return r.cachedList(ctx, catalogAllKey, r.inner.ListAll)
}

func (r *cachedInsuranceRepository) ListActive(ctx context.Context) ([]domain.Insurance, error) {
	return r.cachedList(ctx, catalogActiveKey, r.inner.ListActive)
}

func (r *cachedInsuranceRepository) cachedList(ctx context.Context, prefix string, load func(context.Context) ([]domain.Insurance, error)) ([]domain.Insurance, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.Warn("catalog cache generation read failed", zap.Error(err))
		r.metrics.CacheResult("error")
		return load(ctx)
	}
	key := prefix + ":" + strconv.FormatInt(gen, 10)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []domain.Insurance
		if err := json.Unmarshal(raw, &cached); err == nil {
			r.metrics.CacheResult("hit")
			return cached, nil
		}
		r.logger.Warn("discarding unreadable catalog cache entry", zap.String("key", key))
		r.metrics.CacheResult("error")
	case errors.Is(err, redis.Nil):
		r.metrics.CacheResult("miss")
	default:
		r.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		r.metrics.CacheResult("error")
	}

	list, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(list); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return list, nil
}

// generation returns the current catalog generation; a missing counter is generation zero.
func (r *cachedInsuranceRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, catalogGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// invalidate moves readers to a new generation. Entries of older generations expire on their TTL.
func (r *cachedInsuranceRepository) invalidate(ctx context.Context) {
	if err := r.client.Incr(ctx, catalogGenerationKey).Err(); err != nil {
		r.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
