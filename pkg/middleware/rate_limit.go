package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	apperrors "securebook/pkg/errors"
	httputil "securebook/pkg/http"
	"securebook/pkg/logger"
)

const defaultCleanupInterval = time.Hour

// KeyExtractor names the client a request is counted against.
type KeyExtractor func(r *http.Request) string

// RequestMatcher selects the requests a limiter counts.
type RequestMatcher func(r *http.Request) bool

// SessionRateLimiter is a sliding-window limiter keyed by visitor session.
type SessionRateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor KeyExtractor
	log       *logger.Logger
	now       func() time.Time
	stopCh    chan struct{}
	once      sync.Once
}

func NewSessionRateLimiter(limit int, window time.Duration, extractor KeyExtractor, log *logger.Logger) *SessionRateLimiter {
	limiter := newSessionRateLimiter(limit, window, extractor, log, time.Now)
	go limiter.cleanup(defaultCleanupInterval)
	return limiter
}

func newSessionRateLimiter(limit int, window time.Duration, extractor KeyExtractor, log *logger.Logger, now func() time.Time) *SessionRateLimiter {
	return &SessionRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		now:       now,
		stopCh:    make(chan struct{}),
	}
}

func (rl *SessionRateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *SessionRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, timestamps := range rl.requests {
		if len(timestamps) == 0 || now.Sub(timestamps[len(timestamps)-1]) >= rl.window {
			delete(rl.requests, key)
		}
	}
}

func (rl *SessionRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// Allow records an attempt for key and reports whether it is within the limit.
func (rl *SessionRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := make([]time.Time, 0, len(rl.requests[key])+1)
	for _, ts := range rl.requests[key] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

// SessionRateLimit counts requests chosen by match against the session the
// extractor names. Requests without a session pass.
func SessionRateLimit(limiter *SessionRateLimiter, match RequestMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if match != nil && !match(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := limiter.extractor(r)
			if !limiter.Allow(key) {
				rejectRateLimited(w, limiter, r, key)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(w http.ResponseWriter, limiter *SessionRateLimiter, r *http.Request, key string) {
	limiter.log.Warn("Rate limit exceeded",
		"request_id", RequestID(r.Context()),
		"session_id", key,
		"path", r.URL.Path,
	)

	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(limiter.window.Seconds())))
	_ = httputil.WriteError(w, apperrors.RateLimited("Too many booking attempts, please wait and try again"))
}
