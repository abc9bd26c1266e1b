package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/internal/mocks"
)

func TestCachedSourceNeighbors(t *testing.T) {
	ctx := context.Background()
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	inner := mocks.NewMockGraphSource[string](mockController)
	inner.EXPECT().Neighbors(gomock.Any(), "Go").Return([]string{"Google", "Concurrency"}, nil).Times(1)
	inner.EXPECT().Neighbors(gomock.Any(), "Rust").Return(nil, errors.New("connection reset")).Times(2)

	cached, err := NewCachedSource[string](inner, CacheConfig{MaxSize: 10})
	require.NoError(t, err)
	t.Cleanup(cached.Close)

	for i := 0; i < 3; i++ {
		links, err := cached.Neighbors(ctx, "Go")
		require.NoError(t, err)
		require.Equal(t, []string{"Google", "Concurrency"}, links)
	}

	t.Run("errors_are_not_cached", func(t *testing.T) {
		_, err := cached.Neighbors(ctx, "Rust")
		require.ErrorContains(t, err, "connection reset")
		_, err = cached.Neighbors(ctx, "Rust")
		require.ErrorContains(t, err, "connection reset")
	})
}

func TestCachedSourceResolveIsNotCached(t *testing.T) {
	ctx := context.Background()
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	inner := mocks.NewMockGraphSource[string](mockController)
	inner.EXPECT().Resolve(gomock.Any(), "Go").Return("Go", nil).Times(2)

	cached, err := NewCachedSource[string](inner, CacheConfig{TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(cached.Close)

	for i := 0; i < 2; i++ {
		node, err := cached.Resolve(ctx, "Go")
		require.NoError(t, err)
		require.Equal(t, "Go", node)
	}
}

func TestCachedSourceSession(t *testing.T) {
	ctx := context.Background()
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("inner_sessions_share_the_cache", func(t *testing.T) {
		inner := newSessionSource(mockController)
		cached, err := NewCachedSource[string](inner, CacheConfig{MaxSize: 10})
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		for i := 0; i < 2; i++ {
			session := mocks.NewMockGraphSession[string](mockController)
			if i == 0 {
				session.EXPECT().Neighbors(gomock.Any(), "Go").Return([]string{"Google"}, nil)
			}
			session.EXPECT().Close().Return(nil)
			inner.sessioner.EXPECT().Session(gomock.Any()).Return(session, nil)

			cachedSession, err := cached.Session(ctx)
			require.NoError(t, err)
			links, err := cachedSession.Neighbors(ctx, "Go")
			require.NoError(t, err)
			require.Equal(t, []string{"Google"}, links)
			require.NoError(t, cachedSession.Close())
		}
	})

	t.Run("plain_source", func(t *testing.T) {
		inner := mocks.NewMockGraphSource[string](mockController)
		inner.EXPECT().Neighbors(gomock.Any(), "Go").Return([]string{"Google"}, nil)

		cached, err := NewCachedSource[string](inner, CacheConfig{})
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		session, err := cached.Session(ctx)
		require.NoError(t, err)
		links, err := session.Neighbors(ctx, "Go")
		require.NoError(t, err)
		require.Equal(t, []string{"Google"}, links)
		require.NoError(t, session.Close())
	})

	t.Run("session_error", func(t *testing.T) {
		inner := newSessionSource(mockController)
		inner.sessioner.EXPECT().Session(gomock.Any()).Return(nil, errors.New("pool exhausted"))

		cached, err := NewCachedSource[string](inner, CacheConfig{})
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		_, err = cached.Session(ctx)
		require.ErrorContains(t, err, "pool exhausted")
	})
}

// sessionSource is a GraphSource that also opens sessions.
type sessionSource struct {
	*mocks.MockGraphSource[string]
	sessioner *mocks.MockSessioner[string]
}

func newSessionSource(mockController *gomock.Controller) *sessionSource {
	return &sessionSource{
		MockGraphSource: mocks.NewMockGraphSource[string](mockController),
		sessioner:       mocks.NewMockSessioner[string](mockController),
	}
}

func (s *sessionSource) Session(ctx context.Context) (wikisearch.GraphSession[string], error) {
	return s.sessioner.Session(ctx)
}
