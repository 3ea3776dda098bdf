// Package fetch downloads auxiliary scripts over HTTP.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
)

// maxAssetSize bounds a downloaded script
const maxAssetSize = 8 << 20

// Fetcher retrieves remote assets
type Fetcher interface {
	// Online reports whether the network looks reachable
	Online(ctx context.Context) bool
	// Fetch downloads url
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the production Fetcher
type HTTPFetcher struct {
	client  *http.Client
	probe   string
	timeout time.Duration
	dial    func(ctx context.Context, network, address string) (net.Conn, error)
}

// New creates an HTTPFetcher. probe is a host:port dialled to decide
// whether the network is up.
func New(probe string, timeout time.Duration) *HTTPFetcher {
	dialer := &net.Dialer{Timeout: timeout}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		probe:   probe,
		timeout: timeout,
		dial:    dialer.DialContext,
	}
}

// Online dials the probe address
func (f *HTTPFetcher) Online(ctx context.Context) bool {
	logger := logging.GetLogger("fetch")
	if f.probe == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	conn, err := f.dial(ctx, "tcp", f.probe)
	if err != nil {
		logger.Info().Str("probe", f.probe).Err(err).Msg("No internet connection found")
		return false
	}
	_ = conn.Close()
	return true
}

// Fetch downloads url. Any status other than 200 is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := logging.GetLogger("fetch").With().Str("url", url).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetch, "invalid url %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetch, "failed to download %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrFetch, "failed to download %s: %s", url, resp.Status).
			WithDetail("status", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetch, "failed to read %s", url)
	}
	if len(data) > maxAssetSize {
		return nil, errors.Newf(errors.ErrFetch, "%s is larger than %d bytes", url, maxAssetSize)
	}

	logger.Debug().Int("bytes", len(data)).Msg("Downloaded")
	return data, nil
}
