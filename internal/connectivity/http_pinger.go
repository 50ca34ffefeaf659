package connectivity

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPPinger checks reachability with a HEAD request to a fixed URL.
// Any answer below 500 counts as reachable: an ERP that says 401 is still up.
type HTTPPinger struct {
	client *resty.Client
	url    string
}

// NewHTTPPinger creates a pinger for url.
func NewHTTPPinger(url string, timeout time.Duration, insecureSkipVerify bool) *HTTPPinger {
	client := resty.New().SetTimeout(timeout)
	if insecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}
	return &HTTPPinger{client: client, url: url}
}

// Ping issues the HEAD request.
func (p *HTTPPinger) Ping(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Head(p.url)
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.url, err)
	}
	if resp.StatusCode() >= 500 {
		return fmt.Errorf("probe %s: status %d", p.url, resp.StatusCode())
	}
	return nil
}
