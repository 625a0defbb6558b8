package httpx

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter rate-limits per hostname (www.dice.com, api.adzuna.com, etc).
type HostLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.r, hl.b)
	hl.m[host] = lim
	return lim
}

func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}
	return hl.limiterFor(u.Host).Wait(ctx)
}

// SourceGate is the non-blocking per-source rate check. Allow returning
// false means "skip this call for this source right now"; it is not an
// error and the fetcher returns empty for the query.
type SourceGate struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewSourceGate(reqPerMin float64, burst int) *SourceGate {
	return &SourceGate{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerMin / 60.0),
		b: burst,
	}
}

func (g *SourceGate) Allow(source string) bool {
	g.mu.Lock()
	lim, ok := g.m[source]
	if !ok {
		lim = rate.NewLimiter(g.r, g.b)
		g.m[source] = lim
	}
	g.mu.Unlock()
	return lim.Allow()
}
