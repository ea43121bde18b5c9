package breach

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // the range API is keyed by SHA-1
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/pwcheck/internal/log"
)

const (
	// DefaultEndpoint is the HaveIBeenPwned range API. The hash prefix is
	// appended to it.
	DefaultEndpoint = "https://api.pwnedpasswords.com/range/"

	// DefaultTimeout bounds a single range request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the range API, which
	// rejects requests without one.
	DefaultUserAgent = "pwcheck"

	// PrefixLength is the number of hex characters sent to the API.
	PrefixLength = 5

	// maxBodySize caps the range response. Real responses are well under
	// 100KiB even with padding.
	maxBodySize = 4 << 20
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RangeStore caches range responses keyed by hash prefix.
type RangeStore interface {
	// Get returns the cached body for prefix, or ok=false on a miss.
	Get(ctx context.Context, prefix string) (body []byte, ok bool, err error)

	// Put stores body for prefix.
	Put(ctx context.Context, prefix string, body []byte) error
}

// Client looks up breach counts with the k-anonymity range API.
// Only the first five characters of the SHA-1 digest leave the process.
// A Client is safe for concurrent use if its Doer and RangeStore are.
type Client struct {
	doer      Doer
	endpoint  string
	timeout   time.Duration
	userAgent string
	padding   bool
	cache     RangeStore
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the range API base URL. The prefix is appended
// verbatim, so the endpoint normally ends with "/".
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds each lookup. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithPadding toggles the Add-Padding request header, which makes the
// API pad responses with zero-count entries so the response size does
// not reveal the prefix.
func WithPadding(enabled bool) Option {
	return func(c *Client) {
		c.padding = enabled
	}
}

// WithCache reuses range responses from store.
func WithCache(store RangeStore) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithLogger sets the logger. The hash suffix is never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a Client that sends requests through doer.
// A nil doer uses a plain *http.Client.
func NewClient(doer Doer, opts ...Option) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	c := &Client{
		doer:      doer,
		endpoint:  DefaultEndpoint,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		padding:   true,
		logger:    log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HashPrefix returns the uppercase hex SHA-1 of password split into the
// 5-character prefix sent to the API and the 35-character suffix that is
// matched locally.
func HashPrefix(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) //nolint:gosec // see import
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:PrefixLength], digest[PrefixLength:]
}

// Count returns how many times password appears in known breaches.
// Zero means the suffix was absent from the range response. Every error
// matches ErrLookupFailed.
func (c *Client) Count(ctx context.Context, password string) (int, error) {
	prefix, suffix := HashPrefix(password)

	body, err := c.rangeBody(ctx, prefix)
	if err != nil {
		return 0, err
	}

	count, err := matchSuffix(body, suffix)
	if err != nil {
		return 0, &LookupError{Err: err}
	}
	c.logger.Debug("breach lookup finished", "prefix", prefix, "found", count > 0)
	return count, nil
}

// rangeBody returns the range response for prefix, from the cache when
// one is configured and holds it.
func (c *Client) rangeBody(ctx context.Context, prefix string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, prefix)
		switch {
		case err != nil:
			c.logger.Warn("range cache read failed", "prefix", prefix, "error", err)
		case ok:
			c.logger.Debug("range cache hit", "prefix", prefix)
			return body, nil
		}
	}

	body, err := c.fetch(ctx, prefix)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, prefix, body); err != nil {
			c.logger.Warn("range cache write failed", "prefix", prefix, "error", err)
		}
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, prefix string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.endpoint + prefix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LookupError{Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.padding {
		req.Header.Set("Add-Padding", "true")
	}

	c.logger.Debug("requesting hash range", "url", url)
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &LookupError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &LookupError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &LookupError{StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// matchSuffix scans "SUFFIX:COUNT" lines for suffix. Lines without a
// colon are skipped. A matching line with a bad count is an error.
func matchSuffix(body []byte, suffix string) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		s, n, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(s, suffix) {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || count < 0 {
			return 0, fmt.Errorf("malformed count for matching suffix: %q", n)
		}
		return count, nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, nil
}
