package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 30*time.Second)
//	resp, err := client.R().Get("/api/v1/health")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client bound to baseURL. A non-positive
// timeout leaves resty's default (no timeout) in place.
//
// Retries are left to the caller: resty's own retry loop is disabled so that
// a single request maps to a single attempt.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	cli := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "go-inventory-sync")
	if timeout > 0 {
		cli.SetTimeout(timeout)
	}
	return &HTTPClient{Client: cli}
}
