package api

import (
	"context"
	"time"

	"github.com/bluele/gcache"
	"github.com/rs/zerolog/log"

	"github.com/bvggrabber/bvg-cli/internal/model"
)

const (
	DefaultCacheTTL  = time.Minute
	defaultCacheSize = 64
)

// ResponseCache keeps recent query responses so the board can redraw between updates
// without hitting the site again. Failed responses are cached as well.
type ResponseCache struct {
	cache gcache.Cache
}

// NewResponseCache creates a cache whose entries expire after ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResponseCache{
		cache: gcache.New(defaultCacheSize).LRU().Expiration(ttl).Build(),
	}
}

// Wrap returns a query that answers from the cache while the entry is fresh.
func (c *ResponseCache) Wrap(q Query) Query {
	return CachedQuery{Query: q, cache: c}
}

// Purge drops every cached response.
func (c *ResponseCache) Purge() {
	c.cache.Purge()
}

type cacheEntry struct {
	resp      *model.Response
	fetchedAt time.Time
}

func (c *ResponseCache) get(key string) (cacheEntry, bool) {
	v, err := c.cache.Get(key)
	if err != nil {
		return cacheEntry{}, false
	}
	entry, ok := v.(cacheEntry)
	return entry, ok
}

func (c *ResponseCache) set(key string, resp *model.Response) {
	entry := cacheEntry{resp: resp, fetchedAt: berlinNow()}
	if err := c.cache.Set(key, entry); err != nil {
		log.Debug().Err(err).Str("query", key).Msg("Could not cache response")
	}
}

// CachedQuery is a Query backed by a ResponseCache. The cached response is shared, so
// callers must not mutate it; merge it into a fresh response instead.
type CachedQuery struct {
	Query
	cache *ResponseCache
}

func (q CachedQuery) Call(ctx context.Context) *model.Response {
	key := q.Query.String()
	if entry, ok := q.cache.get(key); ok {
		log.Debug().Str("query", key).Msg("Cache hit")
		return entry.resp
	}

	resp := q.Query.Call(ctx)
	if ctx.Err() == nil {
		q.cache.set(key, resp)
	}
	return resp
}

// FetchedAt is when the cached response was fetched from the site, in Location.
func (q CachedQuery) FetchedAt() (time.Time, bool) {
	entry, ok := q.cache.get(q.Query.String())
	if !ok {
		return time.Time{}, false
	}
	return entry.fetchedAt, true
}
