package connectivity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrRemoteUnhealthy is returned when the remote service answers the
// health probe with a non-200 status.
var ErrRemoteUnhealthy = errors.New("remote service unhealthy")

// HTTPProber probes the remote service's health endpoint over HTTP.
type HTTPProber struct {
	client *resty.Client
	path   string
}

// NewHTTPProber builds a prober for baseURL+healthPath. The timeout bounds
// every probe regardless of the caller's context.
func NewHTTPProber(baseURL, healthPath string, timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &HTTPProber{client: cli, path: healthPath}
}

// Probe implements [Prober].
func (p *HTTPProber) Probe(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get(p.path)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrRemoteUnhealthy, resp.StatusCode())
	}
	return nil
}
