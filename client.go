package main

import (
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const (
	Chrome133UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
	Chrome133SecChUa   = `"Not(A:Brand";v="99", "Google Chrome";v="133", "Chromium";v="133"`
)

// BrowserProfile bundles a TLS client profile with its corresponding browser headers.
type BrowserProfile struct {
	TLSProfile profiles.ClientProfile
	UserAgent  string
	SecChUa    string
	Platform   string
	Mobile     string
}

// Chrome133Profile matches the TLS fingerprint shipped with tls-client.
var Chrome133Profile = &BrowserProfile{
	TLSProfile: profiles.Chrome_133,
	UserAgent:  Chrome133UserAgent,
	SecChUa:    Chrome133SecChUa,
	Platform:   `"Windows"`,
	Mobile:     "?0",
}

// DefaultProfile is the default browser profile used for new clients.
var DefaultProfile = Chrome133Profile

const defaultTimeoutSeconds = 30

func NewClient(logger tls_client.Logger, proxyURL string, timeoutSeconds int) (tls_client.HttpClient, error) {
	return NewClientWithProfile(logger, proxyURL, timeoutSeconds, DefaultProfile.TLSProfile)
}

// NewClientWithProfile builds a client with its own cookie jar. Redirects are followed.
func NewClientWithProfile(logger tls_client.Logger, proxyURL string, timeoutSeconds int, profile profiles.ClientProfile) (tls_client.HttpClient, error) {
	if logger == nil {
		logger = tls_client.NewNoopLogger()
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	jar := tls_client.NewCookieJar()
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithClientProfile(profile),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithCookieJar(jar),
	}

	if proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(proxyURL))
	}

	return tls_client.NewHttpClient(logger, options...)
}
