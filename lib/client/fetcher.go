// Package client fetches resources over HTTP for the resolver.
package client

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ether/etherdelta/lib/cache"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/integrity"
	"github.com/ether/etherdelta/lib/resolver"
	"github.com/ether/etherdelta/lib/resource"
	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 64 << 20
)

// keptHeaders are copied from full responses into cache entries.
var keptHeaders = []string{"Content-Type", "Cache-Control", "ETag", "Last-Modified"}

type Options struct {
	Timeout     time.Duration
	MaxBodySize int64
	UserAgent   string
	Logger      *zap.SugaredLogger
}

type HTTPFetcher struct {
	baseURL *url.URL
	client  *http.Client
	opts    Options
	logger  *zap.SugaredLogger
}

func NewHTTPFetcher(baseURL string, opts Options) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "etherdelta"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = opts.Timeout

	return &HTTPFetcher{baseURL: u, client: client, opts: opts, logger: logger}, nil
}

func (f *HTTPFetcher) resourceURL(id resource.Identity) string {
	u := *f.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + id.Path()
	u.RawQuery = ""
	return u.String()
}

func (f *HTTPFetcher) do(ctx context.Context, id resource.Identity, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.resourceURL(id), nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set("User-Agent", f.opts.UserAgent)

	return f.client.Do(req)
}

func (f *HTTPFetcher) statusError(resp *http.Response) error {
	body, _ := readBody(resp, 512)
	return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(body))}
}

func (f *HTTPFetcher) FetchFull(ctx context.Context, id resource.Identity) (*cache.Entry, error) {
	resp, err := f.do(ctx, id, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, f.statusError(resp)
	}

	body, err := readBody(resp, f.opts.MaxBodySize)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", id, err)
	}

	header := make(map[string]string)
	for _, key := range keptHeaders {
		if value := resp.Header.Get(key); value != "" {
			header[key] = value
		}
	}

	f.logger.Debugf("Fetched %s in full: %d bytes", id, len(body))
	return &cache.Entry{
		Content:     body,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      header,
		StoredAt:    time.Now().UTC(),
	}, nil
}

func (f *HTTPFetcher) FetchDifferential(ctx context.Context, id resource.Identity, baseVersion string) (*resolver.DifferentialResponse, error) {
	header := http.Header{}
	header.Set("Accept", delta.ContentType)
	header.Set(delta.BaseVersionHeader, baseVersion)

	resp, err := f.do(ctx, id, header)
	if err != nil {
		return nil, fmt.Errorf("error fetching delta for %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusExpectationFailed:
		return nil, fmt.Errorf("%w: %s", resolver.ErrBaseNotFound, baseVersion)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, f.statusError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != delta.ContentType {
		return nil, fmt.Errorf("%w: content type %q", ErrNotDifferential, contentType)
	}
	echoedBase := resp.Header.Get(delta.BaseVersionHeader)
	if echoedBase == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDifferential, delta.BaseVersionHeader)
	}
	checksum := resp.Header.Get(integrity.ChecksumHeader)
	if checksum == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDifferential, integrity.ChecksumHeader)
	}

	body, err := readBody(resp, f.opts.MaxBodySize)
	if err != nil {
		return nil, fmt.Errorf("error fetching delta for %s: %w", id, err)
	}
	ops, err := delta.Decode(body)
	if err != nil {
		return nil, err
	}

	f.logger.Debugf("Fetched delta for %s from %s: %d bytes", id, echoedBase, len(body))
	return &resolver.DifferentialResponse{
		Delta:       ops,
		BaseVersion: echoedBase,
		Checksum:    integrity.Digest(checksum),
		ContentType: contentType,
	}, nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

var _ resolver.Fetcher = (*HTTPFetcher)(nil)
