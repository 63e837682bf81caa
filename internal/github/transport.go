package github

import (
	"net/http"
	"time"

	"github.com/vmvarela/ghoten-ui/internal/logger"
)

// loggingTransport records every API round trip with its outcome and
// duration. Headers and bodies stay out of the log.
type loggingTransport struct {
	transport http.RoundTripper
}

func newLoggingTransport(transport http.RoundTripper) *loggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &loggingTransport{transport: transport}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.LogError("HTTP", req.Method+" "+req.URL.Path, err)
		return nil, err
	}

	logger.Log("HTTP: %s %s - %s (%v)", req.Method, req.URL.Path, resp.Status, duration)
	return resp, nil
}
