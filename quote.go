package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"
)

// QuotePayload is a decoded Yahoo JSON response, passed through unmodified.
type QuotePayload map[string]any

var quoteSummaryModules = []string{
	"assetProfile",
	"financialData",
	"defaultKeyStatistics",
	"summaryDetail",
	"price",
	"summaryProfile",
}

// CallQuoteSummary returns the quote summary for symbol, or nil if any step
// failed. Failures are logged, never returned.
func (y *YahooClient) CallQuoteSummary(ctx context.Context, symbol string) QuotePayload {
	payload, err := y.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		y.logger.Log("Error [%s]: %v", FailureKind(err), err)
		return nil
	}
	return payload
}

func (y *YahooClient) fetchQuoteSummary(ctx context.Context, symbol string) (QuotePayload, error) {
	session, crumb, err := y.AcquireSession(ctx, symbol)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("modules", strings.Join(quoteSummaryModules, ","))
	params.Set("crumb", crumb)
	apiURL := y.endpoints.QuoteSummary + url.PathEscape(symbol) + "?" + params.Encode()

	resp, err := session.Get(ctx, apiURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed: %w: %d", ErrBadStatus, resp.StatusCode)
	}

	return parseQuoteSummary(resp.Body)
}

// parseQuoteSummary decodes body and checks the quoteSummary container. A
// present, non-empty error field fails with its description.
func parseQuoteSummary(body []byte) (QuotePayload, error) {
	var payload QuotePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse quote summary: %w", err)
	}

	var envelope struct {
		QuoteSummary *struct {
			Error json.RawMessage `json:"error"`
		} `json:"quoteSummary"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed quoteSummary: %v", ErrAPI, err)
	}
	if envelope.QuoteSummary == nil {
		return nil, fmt.Errorf("%w: Unknown API error", ErrAPI)
	}

	if isTruthyJSON(envelope.QuoteSummary.Error) {
		var apiErr struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(envelope.QuoteSummary.Error, &apiErr); err != nil || apiErr.Description == "" {
			apiErr.Description = "Unknown API error"
		}
		return nil, fmt.Errorf("%w: %s", ErrAPI, apiErr.Description)
	}

	return payload, nil
}

// isTruthyJSON reports whether raw is anything other than absent, null,
// false, a zero number, "" or an empty object/array.
func isTruthyJSON(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", "false", `""`, "{}", "[]":
		return false
	}
	if v[0] == '-' || ('0' <= v[0] && v[0] <= '9') {
		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			f, err := n.Float64()
			return err != nil || f != 0
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, v); err == nil {
		switch compact.String() {
		case "{}", "[]":
			return false
		}
	}
	return true
}
