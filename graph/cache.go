package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/Yiling-J/theine-go"
	"golang.org/x/sync/singleflight"

	"github.com/pdrpinto/wikisearch"
)

const defaultMaxCacheSize = 100000

// CacheConfig bounds the neighbor cache.
type CacheConfig struct {
	// MaxSize is the number of neighbor lists kept.
	MaxSize int64
	// TTL expires entries after the given duration. Zero keeps entries until
	// they are evicted.
	TTL time.Duration
}

// CachedSource memoizes the neighbor lists of an inner source across runs.
// Concurrent misses on the same node share one fetch. Resolve is not cached.
//
// Neighbor lists returned by CachedSource are shared and must not be modified.
type CachedSource[NodeType comparable] struct {
	inner wikisearch.GraphSource[NodeType]
	cache *theine.Cache[NodeType, []NodeType]
	ttl   time.Duration
	group singleflight.Group
}

var _ wikisearch.Sessioner[string] = (*CachedSource[string])(nil)

// NewCachedSource wraps inner with a neighbor cache. Close must be called to
// stop the cache's background maintenance.
func NewCachedSource[NodeType comparable](inner wikisearch.GraphSource[NodeType], config CacheConfig) (*CachedSource[NodeType], error) {
	maxSize := config.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxCacheSize
	}
	cache, err := theine.NewBuilder[NodeType, []NodeType](maxSize).Build()
	if err != nil {
		return nil, fmt.Errorf("build neighbors cache: %w", err)
	}
	return &CachedSource[NodeType]{
		inner: inner,
		cache: cache,
		ttl:   config.TTL,
	}, nil
}

func (c *CachedSource[NodeType]) Resolve(ctx context.Context, key NodeType) (NodeType, error) {
	return c.inner.Resolve(ctx, key)
}

func (c *CachedSource[NodeType]) Neighbors(ctx context.Context, node NodeType) ([]NodeType, error) {
	return c.neighbors(ctx, c.inner, node)
}

// Session opens a session on the inner source; lookups through it still go
// through the shared cache.
func (c *CachedSource[NodeType]) Session(ctx context.Context) (wikisearch.GraphSession[NodeType], error) {
	session, err := openSession(ctx, c.inner)
	if err != nil {
		return nil, err
	}
	return &cachedSession[NodeType]{cache: c, inner: session}, nil
}

// Close stops the cache. The inner source is left open.
func (c *CachedSource[NodeType]) Close() {
	c.cache.Close()
}

func (c *CachedSource[NodeType]) neighbors(ctx context.Context, source wikisearch.GraphSource[NodeType], node NodeType) ([]NodeType, error) {
	neighborsCacheTotalCounter.Inc()
	if links, ok := c.cache.Get(node); ok {
		neighborsCacheHitCounter.Inc()
		return links, nil
	}

	links, err, _ := c.group.Do(fmt.Sprint(node), func() (any, error) {
		links, err := source.Neighbors(ctx, node)
		if err != nil {
			return nil, err
		}
		// an entry costs one slot regardless of its length
		if c.ttl > 0 {
			c.cache.SetWithTTL(node, links, 1, c.ttl)
		} else {
			c.cache.Set(node, links, 1)
		}
		return links, nil
	})
	if err != nil {
		return nil, err
	}
	return links.([]NodeType), nil
}

type cachedSession[NodeType comparable] struct {
	cache *CachedSource[NodeType]
	inner wikisearch.GraphSession[NodeType]
}

func (s *cachedSession[NodeType]) Resolve(ctx context.Context, key NodeType) (NodeType, error) {
	return s.inner.Resolve(ctx, key)
}

func (s *cachedSession[NodeType]) Neighbors(ctx context.Context, node NodeType) ([]NodeType, error) {
	return s.cache.neighbors(ctx, s.inner, node)
}

func (s *cachedSession[NodeType]) Close() error {
	return s.inner.Close()
}
