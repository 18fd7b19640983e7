package swapi

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NetworkError reports a transport failure: DNS, connection, timeout or
// cancellation before a response arrived.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("execute request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPError reports a non-2xx response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}

// Kind labels err for log fields: "canceled", "timeout", "network", "http",
// "decode" or "other".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return "http"
	}
	if errors.Is(err, errDecode) {
		return "decode"
	}
	return "other"
}

var errDecode = errors.New("decode response")
