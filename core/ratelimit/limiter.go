package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces outbound replies per chat. Each chat gets its own token
// bucket, created on first use.
type Limiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a limiter allowing perSecond replies per chat with the given
// burst. perSecond <= 0 disables pacing.
func New(perSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Wait blocks until a reply to chatID may be sent or ctx is done.
func (l *Limiter) Wait(ctx context.Context, chatID int64) error {
	if l.limit <= 0 {
		return nil
	}
	return l.get(chatID).Wait(ctx)
}

// Allow reports whether a reply to chatID may be sent now, consuming a token if so.
func (l *Limiter) Allow(chatID int64) bool {
	if l.limit <= 0 {
		return true
	}
	return l.get(chatID).Allow()
}

func (l *Limiter) get(chatID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[chatID]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters[chatID] = lim
	return lim
}
