package repository

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Backend talks to the order-management API. The table token is the only
// capability; no auth headers are sent.
type Backend struct {
	BaseURL string
	HTTP    *http.Client
}

func NewBackend(baseURL string, timeout time.Duration) *Backend {
	return &Backend{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// APIError is an application-level rejection: the request completed but the
// API answered outside the 2xx range. Transport failures are returned as
// plain wrapped errors so callers can tell the two classes apart.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend: %d", e.Status)
}
