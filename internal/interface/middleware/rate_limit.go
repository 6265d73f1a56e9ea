package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/campus-events/pkg/response"
)

// ipFromCtx prefers the address resolved by RealIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds the Redis counter key for a request.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to let a request skip the limiter.
type AllowFunc func(*gin.Context) bool

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath gives every route its own window per client.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID falls back to the client IP for anonymous requests.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

// hitScript increments the window counter, arms the expiry on the first hit
// and returns {count, remaining ttl in ms}.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

var errBadReply = errors.New("rate limit: unexpected script reply")

// RateLimiter is a fixed-window counter shared through Redis.
type RateLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	key    KeyFunc
	allow  AllowFunc
}

// hit records one request and reports the count and time until the window resets.
func (l *RateLimiter) hit(c *gin.Context) (int, time.Duration, error) {
	res, err := hitScript.Run(c.Request.Context(), l.rdb, []string{l.key(c)}, l.window.Milliseconds()).Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, errBadReply
	}
	return toInt(res[0]), time.Duration(toInt(res[1])) * time.Millisecond, nil
}

func (l *RateLimiter) Handle(c *gin.Context) {
	if (l.allow != nil && l.allow(c)) || strings.EqualFold(c.Request.Method, http.MethodOptions) {
		c.Next()
		return
	}

	count, ttl, err := l.hit(c)
	if err != nil {
		// fail open
		c.Next()
		return
	}
	resetSec := 0
	if ttl > 0 {
		resetSec = int((ttl + time.Second - 1) / time.Second)
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(l.max))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining(l.max, count)))
	c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

	if count > l.max {
		if resetSec > 0 {
			c.Header("Retry-After", strconv.Itoa(resetSec))
		}
		response.Error[any](c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
		return
	}
	c.Next()
}

// RateLimit allows max requests per key within window and answers 429 beyond
// that. A nil client or a non-positive limit disables limiting; Redis errors fail open.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	l := &RateLimiter{rdb: rdb, max: max, window: window, key: keyFn, allow: allow}
	return l.Handle
}

func remaining(max, count int) int {
	if count >= max {
		return 0
	}
	return max - count
}

func toInt(v interface{}) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
