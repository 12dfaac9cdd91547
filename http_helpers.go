package main

import (
	"io"

	http "github.com/bogdanfinn/fhttp"
)

// PseudoHeaderOrder is the standard HTTP/2 pseudo-header order for all requests.
var PseudoHeaderOrder = []string{
	":method",
	":authority",
	":scheme",
	":path",
}

// HTTPClient is the part of tls_client.HttpClient a Session needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// readResponseBody decompresses and reads the full response body.
// Caller should defer resp.Body.Close() before calling this.
func readResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Header.Get("Content-Encoding") == "" {
		return io.ReadAll(resp.Body)
	}
	body := http.DecompressBody(resp)
	defer body.Close()
	return io.ReadAll(body)
}

// navigationHeaders returns the header set a browser sends for a top-level page load.
func navigationHeaders(profile *BrowserProfile) http.Header {
	return http.Header{
		"sec-ch-ua":                 {profile.SecChUa},
		"sec-ch-ua-mobile":          {profile.Mobile},
		"sec-ch-ua-platform":        {profile.Platform},
		"upgrade-insecure-requests": {"1"},
		"user-agent":                {profile.UserAgent},
		"accept":                    {"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
		"sec-fetch-site":            {"none"},
		"sec-fetch-mode":            {"navigate"},
		"sec-fetch-dest":            {"document"},
		"accept-encoding":           {"gzip, deflate, br"},
		"accept-language":           {"en-US,en;q=0.5"},
		"cache-control":             {"max-age=0"},
		"dnt":                       {"1"},
		"connection":                {"keep-alive"},
		http.HeaderOrderKey: {
			"connection",
			"cache-control",
			"sec-ch-ua",
			"sec-ch-ua-mobile",
			"sec-ch-ua-platform",
			"dnt",
			"upgrade-insecure-requests",
			"user-agent",
			"accept",
			"sec-fetch-site",
			"sec-fetch-mode",
			"sec-fetch-dest",
			"accept-encoding",
			"accept-language",
			"cookie",
		},
		http.PHeaderOrderKey: PseudoHeaderOrder,
	}
}

// userAgentHeaders is the bare header set used by the token-free chart fallback.
func userAgentHeaders(profile *BrowserProfile) http.Header {
	return http.Header{
		"user-agent":         {profile.UserAgent},
		http.HeaderOrderKey:  {"user-agent"},
		http.PHeaderOrderKey: PseudoHeaderOrder,
	}
}
