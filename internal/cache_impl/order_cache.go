package cache_impl

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type CacheI[K uuid.UUID, V *models.Order] interface {
	Get(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
	Remove(key K) (present bool)
}

type Cache struct {
	cache CacheI[uuid.UUID, *models.Order]
	log   logger.Logger
}

func NewCache(
	cache CacheI[uuid.UUID, *models.Order],
	log logger.Logger,
) *Cache {
	return &Cache{
		cache: cache,
		log:   log,
	}
}

// NewLRU builds the expirable LRU the service runs with.
func NewLRU(log logger.Logger, size int, ttl time.Duration) *Cache {
	return NewCache(expirable.NewLRU[uuid.UUID, *models.Order](size, nil, ttl), log)
}

func (c *Cache) Add(key uuid.UUID, value *models.Order) (evicted bool) {
	const op = "cache_impl.Cache.Add"

	evicted = c.cache.Add(key, value)
	if evicted {
		c.log.Debug(op, logger.String("message", "cache size was exceeded"))
	}

	return evicted
}

func (c *Cache) Get(key uuid.UUID) (value *models.Order, ok bool) {
	return c.cache.Get(key)
}

func (c *Cache) Remove(key uuid.UUID) (present bool) {
	return c.cache.Remove(key)
}
