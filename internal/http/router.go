package httpserver

import (
	"net/http"

	"github.com/Navneet1266/energy-ingestion/internal/http/handlers"
	"github.com/Navneet1266/energy-ingestion/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Ingestion  *handlers.IngestionHandlers
	Analytics  *handlers.AnalyticsHandler
	LiveStatus *handlers.LiveStatusHandlers
	Index      http.HandlerFunc
	Health     http.HandlerFunc
}

// NewRouter wires HTTP routes. When jwtSecret is non-empty, /v1 routes
// require a valid bearer token; health and the index stay open.
func NewRouter(deps RouterDeps, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/", method(http.MethodGet, deps.Index))
	mux.Handle("/health", method(http.MethodGet, deps.Health))

	protect := func(handler http.Handler) http.Handler {
		if jwtSecret == "" {
			return handler
		}
		return middleware.Chain(handler, middleware.AuthMiddleware(jwtSecret))
	}

	mux.Handle("/v1/ingestion/meter", protect(method(http.MethodPost, http.HandlerFunc(deps.Ingestion.Meter))))
	mux.Handle("/v1/ingestion/vehicle", protect(method(http.MethodPost, http.HandlerFunc(deps.Ingestion.Vehicle))))
	mux.Handle("/v1/ingestion/meter/batch", protect(method(http.MethodPost, http.HandlerFunc(deps.Ingestion.MeterBatch))))
	mux.Handle("/v1/ingestion/vehicle/batch", protect(method(http.MethodPost, http.HandlerFunc(deps.Ingestion.VehicleBatch))))

	mux.Handle("/v1/analytics/performance/", protect(method(http.MethodGet, http.HandlerFunc(deps.Analytics.Performance))))

	mux.Handle("/v1/live/meter/", protect(method(http.MethodGet, http.HandlerFunc(deps.LiveStatus.Meter))))
	mux.Handle("/v1/live/vehicle/", protect(method(http.MethodGet, http.HandlerFunc(deps.LiveStatus.Vehicle))))

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
