package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
	"github.com/spec-kit/insurance-service/internal/repository/memory"
)

func newCachedRepo(t *testing.T) (repository.InsuranceRepository, repository.InsuranceRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := memory.NewInsuranceRepository(memory.NewStore())
	return repository.NewCachedInsuranceRepository(inner, client, time.Minute, zap.NewNop(), nil), inner, mr
}

func TestCachedListServesFromRedis(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedRepo(t)

	require.NoError(t, inner.Create(ctx, &domain.Insurance{Name: "Kasko Sigortası", IsActive: true, CreatedAt: time.Now()}))

	first, err := cached.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists("catalog:insurances:active:0"))

	// Writes that bypass the decorator are invisible until the entry expires.
	require.NoError(t, inner.Create(ctx, &domain.Insurance{Name: "Konut Sigortası", IsActive: true, CreatedAt: time.Now()}))
	second, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	mr.FastForward(2 * time.Minute)
	third, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestCachedWritesInvalidate(t *testing.T) {
	ctx := context.Background()
	cached, _, mr := newCachedRepo(t)

	ins := &domain.Insurance{Name: "Kasko Sigortası", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, cached.Create(ctx, ins))

	_, err := cached.ListAll(ctx)
	require.NoError(t, err)
	_, err = cached.ListActive(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("catalog:insurances:all:1"))

	toggled, err := cached.ToggleActive(ctx, ins.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	gen, err := mr.Get("catalog:insurances:gen")
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
	assert.False(t, mr.Exists("catalog:insurances:all:2"))
	assert.False(t, mr.Exists("catalog:insurances:active:2"))

	active, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCachedFallsThroughWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedRepo(t)
	require.NoError(t, inner.Create(ctx, &domain.Insurance{Name: "Sağlık Sigortası", IsActive: true, CreatedAt: time.Now()}))

	mr.Close()

	list, err := cached.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCachedDisabledWithoutClient(t *testing.T) {
	inner := memory.NewInsuranceRepository(memory.NewStore())
	assert.Same(t, inner, repository.NewCachedInsuranceRepository(inner, nil, time.Minute, nil, nil))
}

// pausingRepository holds ListActive after loading until released.
type pausingRepository struct {
	repository.InsuranceRepository
	loaded  chan struct{}
	release chan struct{}
}

func (r *pausingRepository) ListActive(ctx context.Context) ([]domain.Insurance, error) {
	list, err := r.InsuranceRepository.ListActive(ctx)
	r.loaded <- struct{}{}
	<-r.release
	return list, err
}

func TestCachedListLoadedBeforeWriteIsNotServed(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &pausingRepository{
		InsuranceRepository: memory.NewInsuranceRepository(memory.NewStore()),
		loaded:              make(chan struct{}),
		release:             make(chan struct{}),
	}
	cached := repository.NewCachedInsuranceRepository(inner, client, time.Hour, zap.NewNop(), nil)

	ins := &domain.Insurance{Name: "Kasko Sigortası", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, cached.Create(ctx, ins))

	var (
		wg    sync.WaitGroup
		stale []domain.Insurance
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		stale, _ = cached.ListActive(ctx)
	}()

	<-inner.loaded
	_, err := cached.ToggleActive(ctx, ins.ID, time.Now())
	require.NoError(t, err)
	close(inner.release)
	wg.Wait()
	assert.Len(t, stale, 1, "the in-flight reader saw the pre-write list")

	go func() {
		for range inner.loaded {
		}
	}()
	t.Cleanup(func() { close(inner.loaded) })

	active, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
