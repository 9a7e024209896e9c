package matching

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const sportCatalogKey = "sociusfit:sports:catalog"

// SportCatalog is a process-wide read-through cache over the sport
// reference table. Lookups go memory -> Redis -> database; the matching
// core never mutates it.
type SportCatalog struct {
	store SportStore
	redis *redis.Client // optional, nil disables the shared cache layer
	ttl   time.Duration

	mu       sync.RWMutex
	names    map[int64]string
	loadedAt time.Time
}

// NewSportCatalog creates a catalog backed by store, with an optional
// Redis layer shared across instances
func NewSportCatalog(store SportStore, redisClient *redis.Client, ttl time.Duration) *SportCatalog {
	return &SportCatalog{
		store: store,
		redis: redisClient,
		ttl:   ttl,
	}
}

// Names returns the id -> display name map, refreshing expired entries
func (c *SportCatalog) Names(ctx context.Context) (map[int64]string, error) {
	c.mu.RLock()
	if c.names != nil && time.Since(c.loadedAt) < c.ttl {
		names := c.names
		c.mu.RUnlock()
		return names, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have refreshed while we waited for the lock
	if c.names != nil && time.Since(c.loadedAt) < c.ttl {
		return c.names, nil
	}

	sports, err := c.load(ctx)
	if err != nil {
		// Serve stale data over failing the feed
		if c.names != nil {
			log.Printf("sport catalog refresh failed, serving stale entries: %v", err)
			return c.names, nil
		}
		return nil, err
	}

	names := make(map[int64]string, len(sports))
	for _, s := range sports {
		names[s.ID] = s.Name
	}

	c.names = names
	c.loadedAt = time.Now()
	return names, nil
}

// Invalidate drops the cached entries so the next lookup reloads
func (c *SportCatalog) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.names = nil
	c.mu.Unlock()

	if c.redis != nil {
		if err := c.redis.Del(ctx, sportCatalogKey).Err(); err != nil {
			log.Printf("failed to drop sport catalog from Redis: %v", err)
		}
	}
}

// load reads the catalog from Redis if present, falling back to the
// database and repopulating Redis on a miss
func (c *SportCatalog) load(ctx context.Context) ([]Sport, error) {
	if c.redis != nil {
		cached, err := c.redis.Get(ctx, sportCatalogKey).Bytes()
		if err == nil {
			var sports []Sport
			if err := json.Unmarshal(cached, &sports); err == nil {
				return sports, nil
			}
			log.Printf("discarding corrupt sport catalog cache entry")
		} else if err != redis.Nil {
			log.Printf("Redis sport catalog read failed, falling back to database: %v", err)
		}
	}

	sports, err := c.store.GetAllSports(ctx)
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		if payload, err := json.Marshal(sports); err == nil {
			if err := c.redis.Set(ctx, sportCatalogKey, payload, c.ttl).Err(); err != nil {
				log.Printf("failed to cache sport catalog in Redis: %v", err)
			}
		}
	}

	return sports, nil
}
