package observability

type Metrics interface {
	ObserveHTTP(method, route string, status int, durMs float64)
	ObservePlacement(items int, totalCents int64, durMs float64)
	ObserveResolve(productID string, durMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObservePlacement(int, int64, float64)     {}
func (Noop) ObserveResolve(string, float64, bool)     {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}

func NewNoop() Noop { return Noop{} }
