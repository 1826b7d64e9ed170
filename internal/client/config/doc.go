// Package config loads runtime configuration for the nekolist CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. NEKO_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-s string   session database file
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "session_dsn": "/home/me/.nekolist.db",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "otel_endpoint": "http://localhost:4318"
//	}
package config
