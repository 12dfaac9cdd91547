package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

const previewLength = 500

var engineLog *log.Logger

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig(os.Args)
	if err != nil {
		log.Fatal(err)
	}

	logFile, logger, err := setupLogging(cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	engineLog = logger

	proxies, err := LoadProxyManager(cfg.ProxyFile)
	if err != nil {
		engineLog.Fatalf("Failed to load proxies: %v", err)
	}
	if proxies != nil {
		engineLog.Printf("Loaded %d proxies", proxies.Count())
	}

	client := NewYahooClient(cfg, proxies, newRunLogger(&moduleLogger{logger: engineLog}))
	run(context.Background(), client, cfg.Symbol, os.Stdout)
}

// quoteFunc is one way of getting a payload; nil means it failed.
type quoteFunc func(ctx context.Context, symbol string) QuotePayload

// fetchWithFallback tries primary and, only if it yields nothing, fallback
// exactly once. usedFallback reports which one produced the result.
func fetchWithFallback(ctx context.Context, symbol string, primary, fallback quoteFunc, out io.Writer) (result QuotePayload, usedFallback bool) {
	fmt.Fprintln(out, "Trying main approach...")
	if result = primary(ctx, symbol); result != nil {
		fmt.Fprintln(out, "Success with main approach!")
		return result, false
	}

	fmt.Fprintln(out, "\nTrying alternative approach...")
	if result = fallback(ctx, symbol); result != nil {
		fmt.Fprintln(out, "Success with alternative approach!")
	}
	return result, true
}

// run prints progress and a preview of whatever payload was obtained. Failure
// of both paths is reported but is not a process error.
func run(ctx context.Context, client *YahooClient, symbol string, out io.Writer) QuotePayload {
	result, _ := fetchWithFallback(ctx, symbol, client.CallQuoteSummary, client.CallChart, out)
	if result == nil {
		fmt.Fprintln(out, "Both approaches failed. Yahoo may be blocking requests.")
		return nil
	}

	preview, err := previewJSON(result, previewLength)
	if err != nil {
		fmt.Fprintf(out, "Could not render result: %v\n", err)
		return result
	}
	fmt.Fprintln(out, preview)
	return result
}

// previewJSON indents payload and cuts it to at most limit runes, followed by "...".
func previewJSON(payload QuotePayload, limit int) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	s := string(b)
	if utf8.RuneCountInString(s) > limit {
		s = string([]rune(s)[:limit])
	}
	return s + "...", nil
}
