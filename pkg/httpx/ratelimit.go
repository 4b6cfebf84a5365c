package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SGK112/CRM-sub005/pkg/slogx"
	"github.com/caarlos0/env/v11"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: RequestsPerWindow refill over Window,
// with at most Burst requests spent at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Profiles by endpoint sensitivity. Each one can be overridden with
// RATELIMIT_<NAME>_REQUESTS, RATELIMIT_<NAME>_WINDOW_SEC and
// RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards login, invitation acceptance and provisioning.
	StrictLimit = ParseRateLimitFromEnv("STRICT", perMinute(5))
	// ModerateLimit guards invitation writes.
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", perMinute(20))
	// LenientLimit guards authenticated reads and probes.
	LenientLimit = ParseRateLimitFromEnv("LENIENT", perMinute(100))
	// PublicLimit guards public documents such as the JWKS.
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", perMinute(1000))
)

func perMinute(n int) RateLimitConfig {
	return RateLimitConfig{RequestsPerWindow: n, Window: time.Minute, Burst: n}
}

type rateLimitEnv struct {
	Requests  int `env:"REQUESTS"`
	WindowSec int `env:"WINDOW_SEC"`
	Burst     int `env:"BURST"`
}

// ParseRateLimitFromEnv overlays RATELIMIT_<prefix>_* variables on def.
// Unparseable input leaves def untouched, and only positive values apply.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	var raw rateLimitEnv
	if err := env.ParseWithOptions(&raw, env.Options{Prefix: "RATELIMIT_" + prefix + "_"}); err != nil {
		return def
	}

	out := def
	if raw.Requests > 0 {
		out.RequestsPerWindow = raw.Requests
	}
	if raw.WindowSec > 0 {
		out.Window = time.Duration(raw.WindowSec) * time.Second
	}
	if raw.Burst > 0 {
		out.Burst = raw.Burst
	}
	return out
}

// KeyExtractor picks the bucket a request is charged to. An empty key
// means the request is not limited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the client address, trusting the first
// X-Forwarded-For hop and then X-Real-IP when present.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func UserIDKeyExtractor(r *http.Request) string {
	return UserIDFromCtx(r.Context())
}

// WorkspaceKeyExtractor keys on the workspace bound to the bearer token.
func WorkspaceKeyExtractor(r *http.Request) string {
	return WorkspaceIDFromCtx(r.Context())
}

// CompositeKeyExtractor joins the non-empty keys of several extractors.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if k := extract(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

// JSONFieldKeyExtractor reads a top-level string field from a JSON body,
// lower-cased and trimmed. The body is put back for the handler.
func JSONFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}
		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return ""
		}

		var doc map[string]any
		if json.Unmarshal(raw, &doc) != nil {
			return ""
		}
		v, _ := doc[field].(string)
		return strings.ToLower(strings.TrimSpace(v))
	}
}

const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// bucketSet holds one token bucket per key and forgets keys that have been
// idle for bucketIdleTTL.
type bucketSet struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newBucketSet(cfg RateLimitConfig) *bucketSet {
	return &bucketSet{
		limit:     rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		buckets:   make(map[string]*bucket),
		nextSweep: time.Now().Add(bucketIdleTTL),
	}
}

// take spends one token for key. When the bucket is empty it reports how
// long until the next token.
func (s *bucketSet) take(key string, now time.Time) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.After(s.nextSweep) {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > bucketIdleTTL {
				delete(s.buckets, k)
			}
		}
		s.nextSweep = now.Add(bucketIdleTTL)
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now

	if b.lim.AllowN(now, 1) {
		return true, 0
	}
	res := b.lim.ReserveN(now, 1)
	wait := res.DelayFrom(now)
	res.CancelAt(now)
	return false, wait
}

// RateLimitMiddleware rejects requests over cfg with 429, charging each
// request to the bucket named by key.
func RateLimitMiddleware(cfg RateLimitConfig, key KeyExtractor) Middleware {
	set := newBucketSet(cfg)
	limitHeader := strconv.Itoa(cfg.RequestsPerWindow)
	windowHeader := cfg.Window.String()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			k := key(r)
			if k == "" {
				log.Warn("rate limit key unavailable, request not limited", "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			ok, wait := set.take(k, time.Now())
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(wait.Seconds()), 1)
			h := w.Header()
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			h.Set("X-RateLimit-Limit", limitHeader)
			h.Set("X-RateLimit-Window", windowHeader)

			log.Warn("rate limit exceeded", "key", k, "path", r.URL.Path, "retry_after", retryAfter)
			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		})
	}
}

func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser keys on the authenticated user plus the client address.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", UserIDKeyExtractor, IPKeyExtractor))
}

// RateLimitByIPAndJSONField keys on the client address plus a body field,
// e.g. the email of a login attempt.
func RateLimitByIPAndJSONField(cfg RateLimitConfig, field string) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", IPKeyExtractor, JSONFieldKeyExtractor(field)))
}

// RateLimitByWorkspace charges every caller of one workspace to a shared
// bucket per address.
func RateLimitByWorkspace(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", WorkspaceKeyExtractor, IPKeyExtractor))
}
