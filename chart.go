package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	http "github.com/bogdanfinn/fhttp"
)

// CallChart fetches the chart endpoint, which does not need a crumb. It uses
// its own bare session and returns nil on any failure.
func (y *YahooClient) CallChart(ctx context.Context, symbol string) QuotePayload {
	payload, status, err := y.fetchChart(ctx, symbol)
	if err != nil {
		y.logger.Log("Alternative approach failed: %v", err)
		return nil
	}
	if status != http.StatusOK {
		y.logger.Log("Chart API failed with status: %d", status)
		return nil
	}
	return payload
}

func (y *YahooClient) fetchChart(ctx context.Context, symbol string) (QuotePayload, int, error) {
	client, err := y.newHTTPClient()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	session := newSession(client, userAgentHeaders(y.profile), y.logger)

	resp, err := session.Get(ctx, y.endpoints.Chart+url.PathEscape(symbol))
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var payload QuotePayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to parse chart response: %w", err)
	}
	return payload, resp.StatusCode, nil
}
