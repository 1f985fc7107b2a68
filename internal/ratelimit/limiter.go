package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter kept in Redis. A nil Client allows
// every call.
type Limiter struct {
	Client *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

var errUnexpectedReply = errors.New("ratelimit: unexpected script reply")

// KEYS[1] counter, ARGV[1] limit, ARGV[2] window in ms.
var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("PTTL", KEYS[1])
if current > tonumber(ARGV[1]) then
  return {0, ttl}
end
return {1, ttl}
`)

// Allow counts one hit against key and reports whether it is within the
// limit, plus how long until the window resets.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.Client == nil {
		return true, 0, nil
	}

	limit := l.Limit
	if limit <= 0 {
		limit = 5
	}
	window := l.Window
	if window <= 0 {
		window = time.Minute
	}

	res, err := allowScript.Run(ctx, l.Client, []string{l.Prefix + key}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(res) != 2 {
		return false, 0, errUnexpectedReply
	}

	return res[0] == 1, time.Duration(res[1]) * time.Millisecond, nil
}
