// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient returns a client whose requests are bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
