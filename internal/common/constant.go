// Package common contains constants shared by the client layers.
package common

const (
	// UserIDHeaderName carries the signed-in user's numeric id on outbound
	// requests. The server derives cat ownership from it.
	UserIDHeaderName = "X-User-Id"

	// RequestIDHeaderName carries a per-request UUID for log correlation.
	RequestIDHeaderName = "X-Request-Id"

	// SessionKey is the fixed key the session record is stored under.
	SessionKey = "user"

	// ServiceName identifies this client in logs and traces.
	ServiceName = "nekolist-client"
)
