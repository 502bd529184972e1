package telegram

import (
	"sync"

	"golang.org/x/time/rate"
)

// ChatLimiter enforces a per-chat token bucket so a single chat cannot
// monopolize the provider. A non-positive rps disables limiting.
type ChatLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	rps      float64
	burst    int
}

func NewChatLimiter(rps float64, burst int) *ChatLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ChatLimiter{
		limiters: make(map[int64]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (l *ChatLimiter) Allow(chatID int64) bool {
	if l == nil || l.rps <= 0 {
		return true
	}
	l.mu.Lock()
	limiter, ok := l.limiters[chatID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[chatID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
