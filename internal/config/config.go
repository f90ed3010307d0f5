// Package config defines service configuration and its layered loading.
package config

// Config contains process configuration. All fields have working defaults so
// the server runs with no environment at all; the Postgres archive and the
// static frontend only engage when configured.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AllowedOrigins is the Access-Control-Allow-Origin value on every response.
	AllowedOrigins string `koanf:"allowed_origins"`

	// PgDSN enables the durable Postgres archive when non-empty.
	// There is deliberately no embedded fallback connection string.
	PgDSN string `koanf:"pg_dsn"`

	// DataDir holds the customer snapshot and the cumulative auth-event file.
	DataDir string `koanf:"data_dir"`

	// DailyDir holds one partition file per calendar day, under DataDir.
	DailyDir string `koanf:"daily_dir"`

	// ExportDir receives CSV exports triggered over the API.
	ExportDir string `koanf:"export_dir"`

	// RecentLimit caps GET /api/auth-logs.
	RecentLimit int `koanf:"recent_limit"`

	// RateBurst and RatePerSec tune the per-IP token bucket.
	RateBurst  int `koanf:"rate_burst"`
	RatePerSec int `koanf:"rate_per_sec"`

	// MaxInFlight bounds concurrently handled requests.
	MaxInFlight int `koanf:"max_in_flight"`

	// MaxBodyBytes limits request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// TrustProxyHeaders honors the first X-Forwarded-For hop as the client
	// address. Leave false unless a trusted proxy fronts the service, or a
	// direct client can spoof its recorded address.
	TrustProxyHeaders bool `koanf:"trust_proxy_headers"`

	// StaticDir, when set, is served at / for the dashboard frontend.
	StaticDir string `koanf:"static_dir"`

	// AdminSecret, when set, gates /api/auth-export behind an HS256 bearer token.
	AdminSecret string `koanf:"admin_secret"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:           ":8080",
		AllowedOrigins: "*",
		DataDir:        ".",
		DailyDir:       "daily_auth_logs",
		ExportDir:      ".",
		RecentLimit:    20,
		RateBurst:      50,
		RatePerSec:     25,
		MaxInFlight:    256,
		MaxBodyBytes:   1 << 20,
	}
}
