package main

import (
	"errors"
	"net"
	"strings"
)

// Failure kinds raised along the quote-summary path. They are wrapped with
// context via fmt.Errorf and checked with errors.Is.
var (
	// ErrBadStatus indicates a required request returned a non-200 status.
	ErrBadStatus = errors.New("unexpected status")

	// ErrBlocked indicates Yahoo served a consent, redirect or access-denied page
	// instead of the quote page.
	ErrBlocked = errors.New("page appears to be blocked or redirected")

	// ErrCrumbNotFound indicates no crumb pattern matched the page or any of its scripts.
	ErrCrumbNotFound = errors.New("could not find crumb in page")

	// ErrAPI indicates the quote-summary body lacked its container or carried an error descriptor.
	ErrAPI = errors.New("yahoo finance API error")
)

// transportErrorPatterns contains error message substrings that indicate a network fault.
var transportErrorPatterns = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"i/o timeout",
	"context deadline exceeded",
	"TLS handshake timeout",
	"EOF",
	"malformed HTTP response",
	"transport connection broken",
	"use of closed network connection",
	"proxyconnect",
}

// IsTransportFault checks if the error came from the network rather than from Yahoo's response.
func IsTransportFault(err error) bool {
	if err == nil {
		return false
	}

	if isNetworkTimeout(err) {
		return true
	}

	return containsTransportPattern(err.Error())
}

func isNetworkTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func containsTransportPattern(errStr string) bool {
	for _, pattern := range transportErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// FailureKind returns a short label for the diagnostic line of a failed fetch.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBlocked):
		return "blocked"
	case errors.Is(err, ErrCrumbNotFound):
		return "crumb"
	case errors.Is(err, ErrAPI):
		return "api"
	case errors.Is(err, ErrBadStatus):
		return "status"
	case IsTransportFault(err):
		return "transport"
	default:
		return "unknown"
	}
}
