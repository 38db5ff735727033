package main

import (
	"testing"
	"time"

	"github.com/marketpeek/tickerpick/internal/app"
	"github.com/marketpeek/tickerpick/internal/config"
)

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			APIBaseURL:      "https://api.example.test",
			DBPath:          "watchlist.db",
			RefreshInterval: 5 * time.Minute,
			Width:           80,
			Height:          24,
			ShowFooter:      true,
			Verbose:         true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"api-url": "https://api.example.test",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--api-url", "https://api.example.test"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["api-url"] != "https://api.example.test" {
		t.Fatalf("expected api-url flag, got %v", flagsValue["api-url"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["terminal"].(terminalInfo); !ok {
		t.Fatalf("expected terminal info in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestProbeTerminalOutsideTerminal(t *testing.T) {
	// go test runs with stdout piped, so the probe reports a non-terminal.
	info := probeTerminal()
	if info.IsTerminal && (info.Width <= 0 || info.Height <= 0) {
		t.Fatalf("terminal detected but no dimensions: %+v", info)
	}
}
