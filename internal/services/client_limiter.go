package services

import (
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"math"
	"sync"
	"time"
)

// clientLimiter keeps one token bucket per client address. Idle buckets expire.
type clientLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	r        rate.Limit
	b        int
}

func newClientLimiter(perMinute float64) *clientLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &clientLimiter{
		limiters: cache.New(10*time.Minute, 10*time.Minute),
		r:        rate.Limit(perMinute / 60),
		b:        int(math.Max(1, math.Ceil(perMinute))),
	}
}

func (cl *clientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if lim, ok := cl.limiters.Get(client); ok {
		cl.limiters.SetDefault(client, lim)
		return lim.(*rate.Limiter)
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.limiters.SetDefault(client, lim)
	return lim
}

func (cl *clientLimiter) Allow(client string) bool {
	if cl == nil {
		return true
	}
	return cl.limiterFor(client).Allow()
}
