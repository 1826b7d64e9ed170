package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nekolist/internal/flagx"
	"github.com/dmitrijs2005/nekolist/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Intervals use timex.Duration so they can be written as "3s" or as integer
// nanoseconds. Absent keys keep the value from the previous stage.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	SessionDSN          *string         `json:"session_dsn"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
	OtelEndpoint        *string         `json:"otel_endpoint"`
}

// parseJson overlays Config with values from the file named by -c or
// -config. Without either flag it does nothing. Panics on read or unmarshal
// errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.SessionDSN != nil {
		cfg.SessionDSN = *jc.SessionDSN
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.OtelEndpoint != nil {
		cfg.OtelEndpoint = *jc.OtelEndpoint
	}
}
