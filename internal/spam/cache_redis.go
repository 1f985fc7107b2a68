package spam

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClassifier remembers verdicts by a digest of the content and every
// metadata field, so a verdict is only reused for an identical submission.
// Redis errors fall through to the upstream classifier.
type CachedClassifier struct {
	next   Classifier
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCachedClassifier(next Classifier, client *redis.Client, prefix string, ttl time.Duration) *CachedClassifier {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "sniply_projects:spam:"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedClassifier{next: next, client: client, prefix: p, ttl: ttl}
}

func (c *CachedClassifier) key(content string, meta Metadata) string {
	h := sha256.New()
	for _, field := range []string{content, meta.Title, meta.FileName, meta.UserID, meta.IP, meta.UserAgent} {
		// Length prefixes keep ("ab", "c") and ("a", "bc") apart.
		fmt.Fprintf(h, "%d:%s|", len(field), field)
	}
	return c.prefix + "verdict:" + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedClassifier) IsSpam(ctx context.Context, content string, meta Metadata) (bool, error) {
	key := c.key(content, meta)

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return val == "1", nil
	}

	verdict, err := c.next.IsSpam(ctx, content, meta)
	if err != nil {
		return false, err
	}

	stored := "0"
	if verdict {
		stored = "1"
	}
	_ = c.client.Set(ctx, key, stored, c.ttl).Err()
	return verdict, nil
}
