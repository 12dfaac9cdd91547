package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	http "github.com/bogdanfinn/fhttp"
)

// Endpoints are the Yahoo URLs a YahooClient talks to. The prefix URLs get the
// path-escaped symbol appended.
type Endpoints struct {
	Home         string
	QuotePage    string
	QuoteSummary string
	Chart        string
}

var DefaultEndpoints = Endpoints{
	Home:         "https://finance.yahoo.com/",
	QuotePage:    "https://finance.yahoo.com/quote/",
	QuoteSummary: "https://query1.finance.yahoo.com/v10/finance/quoteSummary/",
	Chart:        "https://query1.finance.yahoo.com/v8/finance/chart/",
}

// YahooClient fetches quote data. It holds no session state between calls:
// every AcquireSession and CallChart builds a fresh HTTP client.
type YahooClient struct {
	endpoints     Endpoints
	profile       *BrowserProfile
	sessionDelay  time.Duration
	newHTTPClient func() (HTTPClient, error)
	logger        Logger
}

// NewYahooClient creates a client whose sessions use the configured timeout
// and, if proxies is non-nil, a random proxy each.
func NewYahooClient(cfg *Config, proxies *ProxyManager, logger Logger) *YahooClient {
	y := &YahooClient{
		endpoints:    DefaultEndpoints,
		profile:      DefaultProfile,
		sessionDelay: cfg.SessionDelay,
		logger:       logger,
	}
	y.newHTTPClient = func() (HTTPClient, error) {
		proxyURL := ""
		if proxies != nil {
			var idx int
			proxyURL, idx = proxies.Random()
			logger.Log("Using proxy: %s", proxies.DisplayAt(idx))
		}
		return NewClient(nil, proxyURL, cfg.TimeoutSeconds)
	}
	return y
}

// Session is an HTTP client plus the headers sent with every request on it.
// Cookies accumulate in the client's jar.
type Session struct {
	client  HTTPClient
	headers http.Header
	logger  Logger
}

type pageResponse struct {
	StatusCode int
	Body       []byte
}

func newSession(client HTTPClient, headers http.Header, logger Logger) *Session {
	return &Session{client: client, headers: headers, logger: logger}
}

// Get issues a GET with the session headers and returns the decoded body.
func (s *Session) Get(ctx context.Context, rawURL string) (*pageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header = s.headers.Clone()

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Log("%s %s -> error: %v", req.Method, req.URL.Path, err)
		return nil, fmt.Errorf("GET %s: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()
	s.logger.Log("%s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.URL.Path, err)
	}

	return &pageResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

// AcquireSession opens a browser-like session, collects Yahoo's cookies from
// the landing page and scrapes the crumb from the symbol's quote page.
func (y *YahooClient) AcquireSession(ctx context.Context, symbol string) (*Session, string, error) {
	client, err := y.newHTTPClient()
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP client: %w", err)
	}
	session := newSession(client, navigationHeaders(y.profile), y.logger)

	// Only the cookies matter here, the status and body are ignored.
	if _, err := session.Get(ctx, y.endpoints.Home); err != nil {
		return nil, "", fmt.Errorf("failed to fetch landing page: %w", err)
	}

	if y.sessionDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(y.sessionDelay):
		}
	}

	page, err := session.Get(ctx, y.endpoints.QuotePage+url.PathEscape(symbol))
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch quote page: %w", err)
	}
	if page.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch page: %w: status code %d", ErrBadStatus, page.StatusCode)
	}

	html := string(page.Body)
	if IsBlockedPage(html) {
		return nil, "", ErrBlocked
	}

	raw, err := findCrumb(html)
	if err != nil {
		return nil, "", err
	}

	crumb, err := decodeCrumb(raw)
	if err != nil {
		y.logger.Log("Warning: Could not decode crumb properly: %v", err)
		crumb = raw
	}
	if crumb == "" {
		return nil, "", fmt.Errorf("%w: crumb decoded to an empty string", ErrCrumbNotFound)
	}

	y.logger.Log("Found crumb: %s", crumb)
	return session, crumb, nil
}
