package main

import (
	"fmt"
	"os"

	"github.com/marketpeek/tickerpick/internal/app"
	"github.com/marketpeek/tickerpick/internal/config"
	"github.com/marketpeek/tickerpick/internal/logging"
	"github.com/marketpeek/tickerpick/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"terminal": probeTerminal(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

type terminalInfo struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTerminal records whether stdout is a terminal and its size, so traces
// from runs with an odd initial layout carry the dimensions that caused it.
func probeTerminal() terminalInfo {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminalInfo{}
	}
	info := terminalInfo{IsTerminal: true}
	width, height, err := term.GetSize(fd)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Width = width
	info.Height = height
	return info
}
