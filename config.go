package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Build-time variables - inject via ldflags
// Example: go build -ldflags "-X main.defaultSymbol=AAPL -X main.defaultProxyFile=/etc/yfquote/proxies.txt"
var (
	defaultSymbol    string // -X main.defaultSymbol=...
	defaultProxyFile string // -X main.defaultProxyFile=...
)

const (
	fallbackSymbol      = "TSLA"
	fallbackProxyFile   = "proxies.txt"
	fallbackLogFile     = "yfquote.log"
	defaultSessionDelay = time.Second
)

// Config holds the settings for one run.
type Config struct {
	Symbol         string
	SessionDelay   time.Duration
	TimeoutSeconds int
	ProxyFile      string
	LogFile        string
}

// LoadConfig reads the environment (after .env has been loaded) and the
// optional positional symbol argument.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{
		Symbol:         GetSymbol(),
		SessionDelay:   defaultSessionDelay,
		TimeoutSeconds: defaultTimeoutSeconds,
		ProxyFile:      GetProxyFile(),
		LogFile:        fallbackLogFile,
	}

	if len(args) > 2 {
		return nil, fmt.Errorf("usage: yfquote [symbol]")
	}
	if len(args) == 2 {
		cfg.Symbol = args[1]
	}
	cfg.Symbol = strings.TrimSpace(cfg.Symbol)
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("symbol must not be empty")
	}

	if v, ok := os.LookupEnv("YF_SESSION_DELAY"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid YF_SESSION_DELAY %q: must be a non-negative duration", v)
		}
		cfg.SessionDelay = d
	}

	if v, ok := os.LookupEnv("YF_TIMEOUT_SECONDS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid YF_TIMEOUT_SECONDS %q: must be a positive integer", v)
		}
		cfg.TimeoutSeconds = n
	}

	if v, ok := os.LookupEnv("YF_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}

	return cfg, nil
}

// GetSymbol returns the default symbol (env, then build-time, then TSLA)
func GetSymbol() string {
	if v := os.Getenv("YF_SYMBOL"); v != "" {
		return v
	}
	if defaultSymbol != "" {
		return defaultSymbol
	}
	return fallbackSymbol
}

// GetProxyFile returns the proxy list path (env, then build-time, then proxies.txt)
func GetProxyFile() string {
	if v, ok := os.LookupEnv("YF_PROXY_FILE"); ok {
		return v
	}
	if defaultProxyFile != "" {
		return defaultProxyFile
	}
	return fallbackProxyFile
}
