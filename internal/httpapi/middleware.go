package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/observability"
)

// baseRouter assembles the chi middleware stack every service shares.
func baseRouter(service string, logger *zap.Logger, metrics observability.Metrics) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		serverTiming(logger, metrics),
	)
	r.Get("/health", healthHandler(service))
	return r
}

// serverTiming measures total request processing time, writes app;dur=... to
// Server-Timing and feeds Metrics.ObserveHTTP.
func serverTiming(logger *zap.Logger, m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.Noop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			dur := float64(time.Since(start).Microseconds()) / 1000.0
			observability.AppendServerTiming(w, "app", dur, "")
			m.ObserveHTTP(r.Method, r.URL.Path, ww.Status(), dur)
			logger.Debug("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Float64("dur_ms", dur),
			)
		})
	}
}
