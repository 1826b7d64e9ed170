package config

import "time"

// Config holds runtime settings for the nekolist CLI.
//
// Fields:
//   - ServerURL: base address of the cat registry API.
//   - SessionDSN: SQLite file keeping the session across runs; empty keeps
//     it in memory for the life of the process.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LogLevel: debug, info, warn or error.
//   - OtelEndpoint: OTLP/HTTP collector URL; empty disables tracing.
type Config struct {
	ServerURL           string        `env:"NEKO_SERVER_URL"`
	SessionDSN          string        `env:"NEKO_SESSION_DSN"`
	OnlineCheckInterval time.Duration `env:"NEKO_ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"NEKO_LOG_LEVEL"`
	OtelEndpoint        string        `env:"NEKO_OTEL_ENDPOINT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.SessionDSN = ""
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.OtelEndpoint = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
