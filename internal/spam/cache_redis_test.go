package spam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedClassifierRemembersVerdict(t *testing.T) {
	mr, client := newRedis(t)

	calls := 0
	upstream := ClassifierFunc(func(ctx context.Context, content string, meta Metadata) (bool, error) {
		calls++
		return content == "spam", nil
	})
	c := NewCachedClassifier(upstream, client, "test:spam:", time.Minute)

	for i := 0; i < 3; i++ {
		got, err := c.IsSpam(context.Background(), "spam", Metadata{})
		require.NoError(t, err)
		assert.True(t, got)
	}
	got, err := c.IsSpam(context.Background(), "fine", Metadata{})
	require.NoError(t, err)
	assert.False(t, got)

	assert.Equal(t, 2, calls)
	assert.Len(t, mr.Keys(), 2)

	mr.FastForward(2 * time.Minute)
	_, err = c.IsSpam(context.Background(), "spam", Metadata{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestCachedClassifierDoesNotCacheErrors(t *testing.T) {
	mr, client := newRedis(t)

	upstream := ClassifierFunc(func(ctx context.Context, content string, meta Metadata) (bool, error) {
		return false, errors.New("unavailable")
	})
	c := NewCachedClassifier(upstream, client, "", 0)

	_, err := c.IsSpam(context.Background(), "x", Metadata{})
	assert.Error(t, err)
	assert.Empty(t, mr.Keys())
}

func TestCachedClassifierKeysOnMetadata(t *testing.T) {
	_, client := newRedis(t)

	keywords, err := NewKeywordClassifier([]string{"casino"}, 0)
	require.NoError(t, err)
	c := NewCachedClassifier(keywords, client, "test:spam:", time.Minute)
	ctx := context.Background()

	ham, err := c.IsSpam(ctx, "hello world", Metadata{Title: "notes"})
	require.NoError(t, err)
	assert.False(t, ham)

	spammy, err := c.IsSpam(ctx, "hello world", Metadata{Title: "best casino"})
	require.NoError(t, err)
	assert.True(t, spammy, "same content with a spam title must not reuse the cached verdict")

	byFile, err := c.IsSpam(ctx, "hello world", Metadata{Title: "notes", FileName: "casino.txt"})
	require.NoError(t, err)
	assert.True(t, byFile)

	again, err := c.IsSpam(ctx, "hello world", Metadata{Title: "notes"})
	require.NoError(t, err)
	assert.False(t, again)
}

func TestCachedClassifierKeySeparatesFields(t *testing.T) {
	c := NewCachedClassifier(Never, nil, "", 0)

	assert.NotEqual(t,
		c.key("ab", Metadata{Title: "c"}),
		c.key("a", Metadata{Title: "bc"}),
	)
	assert.Equal(t,
		c.key("x", Metadata{Title: "t", UserID: "usr_1"}),
		c.key("x", Metadata{Title: "t", UserID: "usr_1"}),
	)
}
