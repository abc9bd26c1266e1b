package graph

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

// RetryConfig tunes the exponential backoff of RetryingSource.
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries uint64
	// InitialInterval is the first wait. Zero uses the backoff default.
	InitialInterval time.Duration
}

// RetryingSource retries failed calls of an inner source with exponential
// backoff. Unknown keys and cancelled contexts are never retried, and waits
// never outlive the context of the call.
type RetryingSource[NodeType comparable] struct {
	inner  wikisearch.GraphSource[NodeType]
	config RetryConfig
	logger logger.Logger
}

var _ wikisearch.Sessioner[string] = (*RetryingSource[string])(nil)

func NewRetryingSource[NodeType comparable](inner wikisearch.GraphSource[NodeType], config RetryConfig, l logger.Logger) *RetryingSource[NodeType] {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &RetryingSource[NodeType]{
		inner:  inner,
		config: config,
		logger: l,
	}
}

func (r *RetryingSource[NodeType]) Resolve(ctx context.Context, key NodeType) (NodeType, error) {
	return resolveWithRetry(ctx, r, r.inner, key)
}

func (r *RetryingSource[NodeType]) Neighbors(ctx context.Context, node NodeType) ([]NodeType, error) {
	return neighborsWithRetry(ctx, r, r.inner, node)
}

// Session opens a session on the inner source, retrying the open itself.
func (r *RetryingSource[NodeType]) Session(ctx context.Context) (wikisearch.GraphSession[NodeType], error) {
	var session wikisearch.GraphSession[NodeType]
	err := r.retry(ctx, "session", nil, func() error {
		var err error
		session, err = openSession(ctx, r.inner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &retryingSession[NodeType]{retrier: r, inner: session}, nil
}

func (r *RetryingSource[NodeType]) policy(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	if r.config.InitialInterval > 0 {
		policy.InitialInterval = r.config.InitialInterval
	}
	return backoff.WithContext(backoff.WithMaxRetries(policy, r.config.MaxRetries), ctx)
}

func (r *RetryingSource[NodeType]) retry(ctx context.Context, operation string, node any, fn func() error) error {
	attempt := 1
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, wikisearch.ErrNodeNotFound) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		r.logger.WarnWithContext(ctx, "graph source call failed",
			zap.String("operation", operation),
			zap.Any("node", node),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		attempt++
		fetchRetryCounter.WithLabelValues(operation).Inc()
		return err
	}, r.policy(ctx))
}

func resolveWithRetry[NodeType comparable](ctx context.Context, r *RetryingSource[NodeType], source wikisearch.GraphSource[NodeType], key NodeType) (NodeType, error) {
	var node NodeType
	err := r.retry(ctx, "resolve", key, func() error {
		var err error
		node, err = source.Resolve(ctx, key)
		return err
	})
	return node, err
}

func neighborsWithRetry[NodeType comparable](ctx context.Context, r *RetryingSource[NodeType], source wikisearch.GraphSource[NodeType], node NodeType) ([]NodeType, error) {
	var links []NodeType
	err := r.retry(ctx, "neighbors", node, func() error {
		var err error
		links, err = source.Neighbors(ctx, node)
		return err
	})
	return links, err
}

type retryingSession[NodeType comparable] struct {
	retrier *RetryingSource[NodeType]
	inner   wikisearch.GraphSession[NodeType]
}

func (s *retryingSession[NodeType]) Resolve(ctx context.Context, key NodeType) (NodeType, error) {
	return resolveWithRetry(ctx, s.retrier, s.inner, key)
}

func (s *retryingSession[NodeType]) Neighbors(ctx context.Context, node NodeType) ([]NodeType, error) {
	return neighborsWithRetry(ctx, s.retrier, s.inner, node)
}

func (s *retryingSession[NodeType]) Close() error {
	return s.inner.Close()
}
