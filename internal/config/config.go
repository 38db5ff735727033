package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/marketpeek/tickerpick/internal/app"
)

// Config captures runtime configuration for the application. Precedence is
// flags over environment variables over the TOML config file over defaults.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envAPIURL     = "TICKERPICK_API_URL"
	envAPIKey     = "TICKERPICK_API_KEY"
	envDBPath     = "TICKERPICK_DB"
	envSymbols    = "TICKERPICK_SYMBOLS"
	envRefresh    = "TICKERPICK_REFRESH"
	envWidth      = "TICKERPICK_WIDTH"
	envHeight     = "TICKERPICK_HEIGHT"
	envShowFooter = "TICKERPICK_FOOTER"
	envVerbose    = "TICKERPICK_VERBOSE"
	envTrace      = "TICKERPICK_TRACE"
	envLogFile    = "TICKERPICK_LOG_FILE"
	envConfigFile = "TICKERPICK_CONFIG"
)

const (
	defaultAPIURL  = "https://api.marketpeek.io"
	defaultRefresh = 15 * time.Minute
)

// fileConfig is the shape of the optional TOML config file.
type fileConfig struct {
	APIURL  string `toml:"api_url"`
	APIKey  string `toml:"api_key"`
	DB      string `toml:"db"`
	Symbols string `toml:"symbols"`
	Refresh string `toml:"refresh"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Footer  bool   `toml:"footer"`
	Verbose bool   `toml:"verbose"`
	Trace   bool   `toml:"trace"`
	LogFile string `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	file, err := loadFile(configPath(args, env))
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("tickerpick", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", "", "path to a TOML config file")
	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, orString(file.APIURL, defaultAPIURL)), "base URL of the ticker search API")
	apiKey := fs.String("api-key", envOrDefault(env, envAPIKey, file.APIKey), "API key for the ticker search backend")
	dbPath := fs.String("db", envOrDefault(env, envDBPath, orString(file.DB, defaultDBPath())), "path to the watchlist database")
	symbols := fs.String("symbols", envOrDefault(env, envSymbols, file.Symbols), "path to a JSON symbol directory (empty uses the built-in seed)")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, orDuration(file.Refresh, defaultRefresh)), "interval between background directory refreshes")
	width := fs.Int("width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.Footer), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, file.Verbose), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *refresh <= 0 {
		return Config{}, fmt.Errorf("refresh must be positive (got %s)", *refresh)
	}
	if strings.TrimSpace(*apiURL) == "" {
		return Config{}, fmt.Errorf("api-url must not be empty")
	}

	cfg := Config{
		App: app.Config{
			APIBaseURL:      strings.TrimRight(*apiURL, "/"),
			APIKey:          *apiKey,
			DBPath:          *dbPath,
			SymbolsPath:     *symbols,
			RefreshInterval: *refresh,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"api-url": *apiURL,
			"db":      *dbPath,
			"symbols": *symbols,
			"refresh": refresh.String(),
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath resolves the config file location: the -config flag wins, then
// the environment, then the default location under the user config dir.
func configPath(args []string, env map[string]string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-config" || arg == "--config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if v, ok := strings.CutPrefix(arg, "-config="); ok {
			return v
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
	}
	if v, ok := env[envConfigFile]; ok {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tickerpick", "config.toml")
}

// loadFile reads the TOML config file. A missing file at the default
// location is not an error; a malformed file always is.
func loadFile(path string) (fileConfig, error) {
	var file fileConfig
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return file, nil
	}
	if err != nil {
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tickerpick.db"
	}
	return filepath.Join(dir, "tickerpick", "watchlist.db")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func orString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orDuration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
