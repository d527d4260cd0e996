package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
)

type cacheRepoStub struct {
	entries  map[string][]byte
	patterns []string
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: make(map[string][]byte)}
}

func (c *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	c.patterns = append(c.patterns, pattern)
	for key := range c.entries {
		delete(c.entries, key)
	}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var missed []byte
	hit, err := svc.Get(context.Background(), "report:item:a", &missed)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "report:item:a", []byte("pdf"), 0))

	var cached []byte
	hit, err = svc.Get(context.Background(), "report:item:a", &cached)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, []byte("pdf"), cached)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, svc.Set(context.Background(), "report:item:a", []byte("pdf"), 0))
	require.NoError(t, svc.Invalidate(context.Background(), "report:item:*"))
	require.Equal(t, []string{"report:item:*"}, repo.patterns)

	var cached []byte
	hit, err := svc.Get(context.Background(), "report:item:a", &cached)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheServiceDisabled(t *testing.T) {
	var svc *CacheService
	require.False(t, svc.Enabled())

	disabled := NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, false)
	require.False(t, disabled.Enabled())

	hit, err := disabled.Get(context.Background(), "key", nil)
	require.NoError(t, err)
	require.False(t, hit)
	require.NoError(t, disabled.Set(context.Background(), "key", "value", 0))
	require.NoError(t, disabled.Invalidate(context.Background(), "*"))
}
