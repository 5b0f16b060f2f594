package pms

import "fmt"

// UpstreamError is returned for any non-2xx PMS response. It carries the
// status code and raw body so callers can log or surface them; the client
// never retries on its own.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return fmt.Sprintf("pms: upstream returned %d: %s", e.StatusCode, body)
}
