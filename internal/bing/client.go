package bing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ytget/bing-wallpaper/internal/model"
)

const (
	DefaultBaseURL   = "https://www.bing.com"
	archivePath      = "/HPImageArchive.aspx"
	defaultUserAgent = "bing-wallpaper/dev"
	requestTimeout   = 30 * time.Second
	maxImageBytes    = 64 << 20
	maxArchiveBytes  = 1 << 20

	// DefaultRequestsPerSecond limits how fast images are pulled from the CDN
	DefaultRequestsPerSecond = 4
)

// Fetcher is the fetch primitive consumed by the update orchestrator.
// *Client implements it.
type Fetcher interface {
	DownloadImageEntries(ctx context.Context, count int, market string) ([]model.ImageEntry, error)
	DownloadBinary(ctx context.Context, rawURL string) ([]byte, error)
	ImageURL(entryURL string) string
}

var _ Fetcher = (*Client)(nil)

// archiveResponse matches HPImageArchive.aspx?format=js
type archiveResponse struct {
	Images []model.ImageEntry `json:"images"`
}

// Client talks to the Bing image archive
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// Option configures a Client
type Option func(*Client)

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateLimit limits requests per second; zero disables limiting
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1)
	}
}

// NewClient builds a client for baseURL (DefaultBaseURL when empty)
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second/DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DownloadImageEntries fetches the newest count archive entries for market
func (c *Client) DownloadImageEntries(ctx context.Context, count int, market string) ([]model.ImageEntry, error) {
	if count < 1 {
		count = 1
	}
	q := url.Values{}
	q.Set("format", "js")
	q.Set("idx", "0")
	q.Set("n", strconv.Itoa(count))
	q.Set("mkt", market)
	reqURL := c.baseURL.String() + archivePath + "?" + q.Encode()

	body, err := c.get(ctx, reqURL, maxArchiveBytes)
	if err != nil {
		return nil, err
	}

	var payload archiveResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(payload.Images) == 0 {
		return nil, fmt.Errorf("%w: archive returned no images", ErrInvalidResponse)
	}
	return payload.Images, nil
}

// DownloadBinary fetches an image and checks that the payload is image data
func (c *Client) DownloadBinary(ctx context.Context, rawURL string) ([]byte, error) {
	data, err := c.get(ctx, rawURL, maxImageBytes)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, ErrInvalidImage
	}
	return data, nil
}

// ImageURL resolves an entry's relative url against the base URL
func (c *Client) ImageURL(entryURL string) string {
	if strings.HasPrefix(entryURL, "http://") || strings.HasPrefix(entryURL, "https://") {
		return entryURL
	}
	if !strings.HasPrefix(entryURL, "/") {
		entryURL = "/" + entryURL
	}
	return c.baseURL.String() + entryURL
}

func (c *Client) get(ctx context.Context, reqURL string, limit int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: reqURL, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrInvalidResponse, limit)
	}
	return data, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrRequestFailed, err)
}
