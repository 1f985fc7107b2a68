package snippets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "sniply_projects:cache:"
	}
	return &RedisCache{client: client, prefix: p}
}

func (c *RedisCache) keyByID(id string) string {
	return c.prefix + "snippet:" + id
}

func (c *RedisCache) keyProjectList(projectID string) string {
	return c.prefix + "project:" + projectID + ":pages"
}

func (c *RedisCache) GetByID(ctx context.Context, id string) (*Snippet, bool, error) {
	var s Snippet
	ok, err := c.getJSON(ctx, c.keyByID(id), &s)
	if !ok || err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (c *RedisCache) SetByID(ctx context.Context, s *Snippet, ttl time.Duration) error {
	return c.setJSON(ctx, c.keyByID(s.ID), s, ttl)
}

func (c *RedisCache) DeleteByID(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.keyByID(id)).Err()
}

// GetListPage reads one page from the project's hash of cached pages.
func (c *RedisCache) GetListPage(ctx context.Context, projectID, page string) ([]*Snippet, bool, error) {
	val, err := c.client.HGet(ctx, c.keyProjectList(projectID), page).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var out []*Snippet
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// SetListPage stores a page. The hash expires ttl after its first page so
// no page outlives the TTL it was written with.
func (c *RedisCache) SetListPage(ctx context.Context, projectID, page string, snippets []*Snippet, ttl time.Duration) error {
	payload, err := json.Marshal(snippets)
	if err != nil {
		return err
	}

	key := c.keyProjectList(projectID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, page, payload)
	pipe.ExpireNX(ctx, key, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) DeleteProjectList(ctx context.Context, projectID string) error {
	return c.client.Del(ctx, c.keyProjectList(projectID)).Err()
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
