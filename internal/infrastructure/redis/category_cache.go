package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/circuitbreaker"
)

const (
	categoryByIDKey = "category:id:%s"
	defaultTTL      = 10 * time.Minute
)

// Store is the subset of Client used by the cache.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Store = (*Client)(nil)

// CachedCategoryRepository caches FindByID lookups of another category.Repository.
// Writes go to the inner repository first and then evict the cached entry.
// Cache failures are logged and bypassed; they never fail a repository call.
type CachedCategoryRepository struct {
	inner   category.Repository
	store   Store
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	writes  writeGenerations
}

// writeGenerations counts writes per cache key in this process. A fill is only kept
// if no write to its key happened between the inner read and the cache write.
type writeGenerations struct {
	mu    sync.Mutex
	byKey map[string]uint64
}

func (g *writeGenerations) current(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.byKey[key]
}

func (g *writeGenerations) bump(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.byKey == nil {
		g.byKey = make(map[string]uint64)
	}
	g.byKey[key]++
}

// NewCachedCategoryRepository wraps inner with a read-through cache.
func NewCachedCategoryRepository(inner category.Repository, store Store, ttl time.Duration) *CachedCategoryRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	settings := circuitbreaker.DefaultSettings("redis-category-cache")
	settings.IsFailure = func(err error) bool { return !errors.Is(err, redis.Nil) }
	settings.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
			Msg("Cache circuit breaker changed state")
	}

	return &CachedCategoryRepository{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		breaker: circuitbreaker.New(settings),
	}
}

// Verify interface implementation at compile time.
var _ category.Repository = (*CachedCategoryRepository)(nil)

// categoryCacheData is the cached representation of a category.
type categoryCacheData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FindByID returns the cached category or loads and caches it.
func (r *CachedCategoryRepository) FindByID(ctx context.Context, id category.ID) (*category.Category, error) {
	key := fmt.Sprintf(categoryByIDKey, id.String())

	data, err := circuitbreaker.Call(ctx, r.breaker, func(ctx context.Context) (string, error) {
		return r.store.Get(ctx, key)
	})
	switch {
	case err == nil:
		if entity, decodeErr := decodeCategory(data); decodeErr == nil {
			return entity, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable cached category")
	case errors.Is(err, redis.Nil):
	default:
		log.Warn().Err(err).Str("key", key).Msg("Category cache read failed")
	}

	generation := r.writes.current(key)
	entity, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.fill(ctx, key, entity, generation)
	return entity, nil
}

// Save persists through the inner repository and evicts the cached entry.
func (r *CachedCategoryRepository) Save(ctx context.Context, entity *category.Category) (*category.Category, error) {
	saved, err := r.inner.Save(ctx, entity)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, saved.ID())
	return saved, nil
}

// Delete removes through the inner repository and evicts the cached entry.
func (r *CachedCategoryRepository) Delete(ctx context.Context, id category.ID) (bool, error) {
	deleted, err := r.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.evict(ctx, id)
	return deleted, nil
}

// FindAll is not cached.
func (r *CachedCategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	return r.inner.FindAll(ctx)
}

// FindActive is not cached.
func (r *CachedCategoryRepository) FindActive(ctx context.Context) ([]*category.Category, error) {
	return r.inner.FindActive(ctx)
}

// FindByName is not cached.
func (r *CachedCategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return r.inner.FindByName(ctx, name)
}

// BreakerState reports the state of the cache circuit breaker.
func (r *CachedCategoryRepository) BreakerState() circuitbreaker.State {
	return r.breaker.State()
}

// fill caches entity unless a write to key happened after generation was read.
// A write that races the Set itself removes the entry again.
func (r *CachedCategoryRepository) fill(ctx context.Context, key string, entity *category.Category, generation uint64) {
	if r.writes.current(key) != generation {
		return
	}
	payload, err := json.Marshal(encodeCategory(entity))
	if err != nil {
		return
	}
	err = r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.store.Set(ctx, key, string(payload), r.ttl)
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Category cache write failed")
		return
	}
	if r.writes.current(key) != generation {
		r.remove(ctx, key)
	}
}

func (r *CachedCategoryRepository) evict(ctx context.Context, id category.ID) {
	key := fmt.Sprintf(categoryByIDKey, id.String())
	r.writes.bump(key)
	r.remove(ctx, key)
}

func (r *CachedCategoryRepository) remove(ctx context.Context, key string) {
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.store.Delete(ctx, key)
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Category cache eviction failed")
	}
}

func encodeCategory(entity *category.Category) categoryCacheData {
	return categoryCacheData{
		ID:          entity.ID().String(),
		Name:        entity.Name().String(),
		Description: entity.Description(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func decodeCategory(raw string) (*category.Category, error) {
	var data categoryCacheData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}

	id, err := category.NewID(data.ID)
	if err != nil {
		return nil, err
	}
	name, err := category.NewName(data.Name)
	if err != nil {
		return nil, err
	}

	return category.ReconstructCategory(id, name, data.Description, data.IsActive, data.CreatedAt, data.UpdatedAt), nil
}
