package integrations

import (
	"errors"
	"net/http"
	"time"
)

const httpTimeout = 60 * time.Second

var (
	// ErrNotFound is returned when a repository does not hold the requested file.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// 429 and 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates the HTTP client used for repository requests. It
// honours HTTPS_PROXY and NO_PROXY, which corporate repository mirrors
// commonly require. Jar downloads can be large, so the timeout is generous.
func NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyFromEnvironment
	return &http.Client{Timeout: httpTimeout, Transport: transport}
}
