package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
)

var (
	// ErrValidation marks input rejected before any request was sent.
	ErrValidation = models.ErrValidation

	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrRejected          = errors.New("request rejected")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is the single error value every network-facing failure is
// converted to: transport failures, non-2xx statuses and undecodable bodies.
//
// Error returns Detail verbatim when the server supplied one, otherwise
// "<Op> failed: <cause>".
type APIError struct {
	// Op names the resource operation, e.g. "delete cat".
	Op string
	// StatusCode is zero when no response was received.
	StatusCode int
	// Detail is the server's human-readable "detail" message, if any.
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	cause := "request failed"
	if e.Err != nil {
		cause = e.Err.Error()
	}
	if e.Op == "" {
		return cause
	}
	return fmt.Sprintf("%s failed: %s", e.Op, cause)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// withOp stamps the operation name on err, converting anything that is not
// already an *APIError.
func withOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		cp := *apiErr
		cp.Op = op
		return &cp
	}
	return &APIError{Op: op, Err: err}
}

func mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		return ErrUnavailable
	case code >= 400 && code < 500:
		return ErrRejected
	default:
		return ErrServer
	}
}

func mapTransport(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseDetail extracts the server's "detail" message. Besides a plain string
// it accepts the list-of-{msg} form validation failures are reported in.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(eb.Detail, &items); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		if m := strings.TrimSpace(it.Msg); m != "" {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, "; ")
}
