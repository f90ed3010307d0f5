// Package httpapi wires the dashboard's HTTP surface: the envelope-based
// /api routes, CORS, and the ambient health/metrics endpoints.
package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/Rizwan2611/CLV-calculator/internal/authlog"
	"github.com/Rizwan2611/CLV-calculator/internal/clv"
	"github.com/Rizwan2611/CLV-calculator/internal/config"
	"github.com/Rizwan2611/CLV-calculator/internal/obs"
)

// API is the HTTP layer. Stores are injected at startup and shared by
// every request.
type API struct {
	mux       *http.ServeMux
	cfg       *config.Config
	customers *clv.Store
	events    *authlog.Store
	version   string
}

// New builds the route table.
func New(cfg *config.Config, customers *clv.Store, events *authlog.Store, version string) *API {
	a := &API{
		mux:       http.NewServeMux(),
		cfg:       cfg,
		customers: customers,
		events:    events,
		version:   version,
	}

	// The dashboard API: every response under /api is an HTTP 200 JSON
	// envelope discriminated by its status field.
	a.mux.HandleFunc("/api/", a.handleAPI)

	a.mux.HandleFunc("/healthz", a.healthz)
	a.mux.Handle("/metrics", obs.Handler())

	if cfg.StaticDir != "" {
		a.mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = Recover(h)
	h = MaxBodyBytes(h, a.cfg.MaxBodyBytes)
	h = RateLimit(h, a.cfg.RateBurst, a.cfg.RatePerSec, a.cfg.TrustProxyHeaders)
	h = InFlightLimit(h, a.cfg.MaxInFlight)
	h = CORS(h, a.cfg.AllowedOrigins)
	h = LoggingJSON(h, a.cfg.TrustProxyHeaders)
	h = RequestID(h)
	return obs.Instrument(h)
}

// handleAPI dispatches on exact (method, path). Unmatched routes answer
// with the application-level error envelope, not an HTTP 404.
func (a *API) handleAPI(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/customers" && r.Method == http.MethodGet:
		a.listCustomers(w, r)
	case r.URL.Path == "/api/customers" && r.Method == http.MethodPost:
		a.createCustomer(w, r)
	case r.URL.Path == "/api/add-customer" && r.Method == http.MethodGet:
		a.addCustomerQuery(w, r)
	case r.URL.Path == "/api/analytics" && r.Method == http.MethodGet:
		a.analytics(w, r)
	case r.URL.Path == "/api/log-auth" && r.Method == http.MethodPost:
		a.logAuth(w, r)
	case r.URL.Path == "/api/auth-stats" && r.Method == http.MethodGet:
		a.authStats(w, r)
	case r.URL.Path == "/api/auth-logs" && r.Method == http.MethodGet:
		a.authLogs(w, r)
	case r.URL.Path == "/api/auth-export" && r.Method == http.MethodGet:
		a.requireAdmin(a.authExport)(w, r)
	default:
		writeEnvelope(w, map[string]any{
			"status":  "error",
			"message": "Endpoint not found",
		})
	}
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "clv-api",
		"version": a.version,
	})
}

// --- helpers ---

// writeJSON marshals before touching the response so an encode failure
// can still answer with a well-formed error body instead of an empty one.
func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		obs.LogError("httpapi", "encode response", err)
		data, _ = json.Marshal(errorEnvelope("Internal server error"))
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

// writeEnvelope emits an /api envelope: always HTTP 200, the status field
// inside the body carries the outcome.
func writeEnvelope(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

func errorEnvelope(message string) map[string]any {
	return map[string]any{
		"status":  "error",
		"message": message,
	}
}

// clientIP returns the peer address the server observed. The first
// X-Forwarded-For hop is honored only when the deployment declares a
// trusted fronting proxy; a direct client could spoof the header.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
