// Package cli provides the interactive nekolist command-line client.
//
// It wires configuration, the session store, the API client and an
// interactive REPL. Each list command mounts a fresh collection view that
// later search and delete commands work on, the way a screen would.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// A background watcher probes GET /health and reports online/offline
// transitions.
package cli
