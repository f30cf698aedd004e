package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/http/handlers"
)

func newTestRouter(secret string) http.Handler {
	logger := zap.NewNop()
	deps := RouterDeps{
		Ingestion:  handlers.NewIngestionHandlers(nil, logger),
		Analytics:  handlers.NewAnalyticsHandler(nil, logger),
		LiveStatus: handlers.NewLiveStatusHandlers(nil, logger),
		Index:      handlers.NewIndexHandler("test"),
		Health:     handlers.NewHealthHandler(),
	}
	return NewRouter(deps, secret)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/v1/ingestion/meter", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("expected Allow: POST, got %q", allow)
	}
}

func TestRouterHealthAlwaysOpen(t *testing.T) {
	router := newTestRouter("topsecret")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterRequiresTokenWhenSecretSet(t *testing.T) {
	router := newTestRouter("topsecret")

	req := httptest.NewRequest(http.MethodPost, "/v1/ingestion/meter", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRouterAcceptsValidToken(t *testing.T) {
	const secret = "topsecret"
	router := newTestRouter(secret)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ingestor"}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	// Empty body fails validation, so a 400 proves the request passed auth.
	req := httptest.NewRequest(http.MethodPost, "/v1/ingestion/meter", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 after auth, got %d", rec.Code)
	}
}
