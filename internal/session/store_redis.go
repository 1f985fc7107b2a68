package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a JSON string with a TTL, plus a set per
// user listing that user's session ids so they can be revoked together.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "sniply_projects:session:"
	}
	return &RedisStore{client: client, prefix: p}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) userKey(userID string) string {
	return s.prefix + "user:" + userID
}

func (s *RedisStore) Set(ctx context.Context, id string, sess Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(id), payload, ttl)
	if sess.UserID != "" {
		idx := s.userKey(sess.UserID)
		pipe.SAdd(ctx, idx, id)
		// The index lives as long as the longest session it lists.
		pipe.ExpireNX(ctx, idx, ttl)
		pipe.ExpireGT(ctx, idx, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	if sess.expired(time.Now()) {
		_ = s.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// DeleteUser drops every session recorded for userID.
func (s *RedisStore) DeleteUser(ctx context.Context, userID string) error {
	idx := s.userKey(userID)
	ids, err := s.client.SMembers(ctx, idx).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, idx)
	return s.client.Del(ctx, keys...).Err()
}
