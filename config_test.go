package main

import (
	"os"
	"testing"
	"time"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"YF_SYMBOL", "YF_SESSION_DELAY", "YF_TIMEOUT_SECONDS", "YF_PROXY_FILE", "YF_LOG_FILE"} {
		unsetEnv(t, key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig([]string{"yfquote"})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Symbol != "TSLA" {
		t.Errorf("Symbol = %q, want TSLA", cfg.Symbol)
	}
	if cfg.SessionDelay != time.Second {
		t.Errorf("SessionDelay = %v, want 1s", cfg.SessionDelay)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if cfg.ProxyFile != "proxies.txt" {
		t.Errorf("ProxyFile = %q, want proxies.txt", cfg.ProxyFile)
	}
	if cfg.LogFile != "yfquote.log" {
		t.Errorf("LogFile = %q, want yfquote.log", cfg.LogFile)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("YF_SYMBOL", "AAPL")
	t.Setenv("YF_SESSION_DELAY", "250ms")
	t.Setenv("YF_TIMEOUT_SECONDS", "12")
	t.Setenv("YF_PROXY_FILE", "")
	t.Setenv("YF_LOG_FILE", "")

	cfg, err := LoadConfig([]string{"yfquote"})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", cfg.Symbol)
	}
	if cfg.SessionDelay != 250*time.Millisecond {
		t.Errorf("SessionDelay = %v, want 250ms", cfg.SessionDelay)
	}
	if cfg.TimeoutSeconds != 12 {
		t.Errorf("TimeoutSeconds = %d, want 12", cfg.TimeoutSeconds)
	}
	if cfg.ProxyFile != "" {
		t.Errorf("ProxyFile = %q, want empty (proxies disabled)", cfg.ProxyFile)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoadConfigArgOverridesEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("YF_SYMBOL", "AAPL")

	cfg, err := LoadConfig([]string{"yfquote", " msft "})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Symbol != "msft" {
		t.Errorf("Symbol = %q, want msft", cfg.Symbol)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"too many args", []string{"yfquote", "A", "B"}, nil},
		{"blank symbol", []string{"yfquote", "   "}, nil},
		{"bad delay", []string{"yfquote"}, map[string]string{"YF_SESSION_DELAY": "soon"}},
		{"negative delay", []string{"yfquote"}, map[string]string{"YF_SESSION_DELAY": "-1s"}},
		{"bad timeout", []string{"yfquote"}, map[string]string{"YF_TIMEOUT_SECONDS": "thirty"}},
		{"zero timeout", []string{"yfquote"}, map[string]string{"YF_TIMEOUT_SECONDS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if cfg, err := LoadConfig(tt.args); err == nil {
				t.Errorf("expected error, got %+v", cfg)
			}
		})
	}
}
