// Package client is the client-side gateway to the cat registry API.
//
// # Overview
//
// The package provides:
//  1. Gateway: one configured HTTP transport with a fixed base address and
//     JSON content type. Its outgoing-request hook reads the signed-in user
//     from an IdentitySource and sets the X-User-Id header, and tags each
//     request with an X-Request-Id and a client tracing span.
//  2. Client and its HTTPClient implementation: one typed method per remote
//     capability (register, login, user detail, list/get/create/update/delete
//     cats, list cats by owner, health ping). Writes never carry server-owned
//     cat fields and are validated before the request is sent.
//  3. InitDatabase and RunMigrations for the local SQLite file that can back
//     the session store.
//
// # Error Handling
//
// Every network-facing failure reaches the caller as *APIError, whose message
// is the server's "detail" when present and "<operation> failed: <cause>"
// otherwise. The cause wraps one of ErrUnavailable, ErrUnauthorized,
// ErrNotFound, ErrConflict, ErrRejected, ErrServer or ErrMalformedResponse,
// so callers can match with errors.Is. Client-side validation failures wrap
// ErrValidation and never reach the network.
//
// The Gateway never retries, caches or imposes timeouts of its own.
package client
