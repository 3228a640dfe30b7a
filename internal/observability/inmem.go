package observability

import "sync"

// Inmem keeps the last max observations in memory. Enough for a demo
// deployment to answer "what just happened" without an external stack.
type Inmem struct {
	mu     sync.Mutex
	last   []any
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{max: max}
}

func (m *Inmem) push(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(struct {
		Kind          string
		Method, Route string
		Status        int
		Dur           float64
	}{"http", method, route, status, durMs})
}

func (m *Inmem) ObservePlacement(items int, totalCents int64, durMs float64) {
	m.push(struct {
		Kind  string
		Items int
		Total int64
		Dur   float64
	}{"placement", items, totalCents, durMs})
}

func (m *Inmem) ObserveResolve(productID string, durMs float64, ok bool) {
	m.push(struct {
		Kind    string
		Product string
		Dur     float64
		OK      bool
	}{"resolve", productID, durMs, ok})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.cacheHits++
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.cacheMiss++
}

// CacheTotals returns accumulated hit/miss counters.
func (m *Inmem) CacheTotals() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss
}

// Last returns a copy of the retained observations, oldest first.
func (m *Inmem) Last() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.last))
	copy(out, m.last)
	return out
}
