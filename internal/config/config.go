package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sameerfidai/FiveLegFlex/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                          string
	ServiceName                     string
	ServiceVersion                  string
	HTTPAddr                        string
	CacheEnabled                    bool
	CacheTTL                        time.Duration
	CORSAllowedOrigins              []string
	ReadTimeout                     time.Duration
	WriteTimeout                    time.Duration
	FetchWorkers                    int
	PprofEnabled                    bool
	PprofAddr                       string
	UptraceEnabled                  bool
	UptraceDSN                      string
	UptraceLogsEnabled              bool
	BetterStackEnabled              bool
	BetterStackEndpoint             string
	BetterStackToken                string
	BetterStackTimeout              time.Duration
	BetterStackMinLevel             logging.Level
	PyroscopeEnabled                bool
	PyroscopeServerAddress          string
	PyroscopeAppName                string
	PyroscopeAuthToken              string
	PyroscopeBasicAuthUser          string
	PyroscopeBasicAuthPassword      string
	PyroscopeUploadRate             time.Duration
	OddsAPIBaseURL                  string
	OddsAPIKey                      string
	OddsAPIRegions                  string
	OddsAPITimeout                  time.Duration
	OddsAPIMaxRetries               int
	OddsAPICircuitEnabled           bool
	OddsAPICircuitFailureCount      int
	OddsAPICircuitOpenTimeout       time.Duration
	OddsAPICircuitHalfOpenMaxReq    int
	PrizePicksBaseURL               string
	PrizePicksTimeout               time.Duration
	PrizePicksMaxRetries            int
	PrizePicksCircuitEnabled        bool
	PrizePicksCircuitFailureCount   int
	PrizePicksCircuitOpenTimeout    time.Duration
	PrizePicksCircuitHalfOpenMaxReq int
	LogLevel                        logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	oddsAPIKey := strings.TrimSpace(getEnv("ODDS_API_KEY", ""))
	if oddsAPIKey == "" {
		return Config{}, fmt.Errorf("ODDS_API_KEY is required")
	}
	oddsAPITimeout, err := time.ParseDuration(getEnv("ODDS_API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_TIMEOUT: %w", err)
	}
	if oddsAPITimeout <= 0 {
		return Config{}, fmt.Errorf("ODDS_API_TIMEOUT must be > 0")
	}
	oddsAPIMaxRetries, err := getEnvAsInt("ODDS_API_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_MAX_RETRIES: %w", err)
	}
	if oddsAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("ODDS_API_MAX_RETRIES must be >= 0")
	}
	oddsAPICircuitEnabled, err := strconv.ParseBool(getEnv("ODDS_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_CIRCUIT_ENABLED: %w", err)
	}
	oddsAPICircuitFailureCount, err := getEnvAsInt("ODDS_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if oddsAPICircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ODDS_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	oddsAPICircuitOpenTimeout, err := time.ParseDuration(getEnv("ODDS_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if oddsAPICircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ODDS_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	oddsAPICircuitHalfOpenMaxReq, err := getEnvAsInt("ODDS_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if oddsAPICircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ODDS_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	prizePicksTimeout, err := time.ParseDuration(getEnv("PRIZEPICKS_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIZEPICKS_TIMEOUT: %w", err)
	}
	if prizePicksTimeout <= 0 {
		return Config{}, fmt.Errorf("PRIZEPICKS_TIMEOUT must be > 0")
	}
	prizePicksMaxRetries, err := getEnvAsInt("PRIZEPICKS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIZEPICKS_MAX_RETRIES: %w", err)
	}
	if prizePicksMaxRetries < 0 {
		return Config{}, fmt.Errorf("PRIZEPICKS_MAX_RETRIES must be >= 0")
	}
	prizePicksCircuitEnabled, err := strconv.ParseBool(getEnv("PRIZEPICKS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIZEPICKS_CIRCUIT_ENABLED: %w", err)
	}
	prizePicksCircuitFailureCount, err := getEnvAsInt("PRIZEPICKS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIZEPICKS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if prizePicksCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PRIZEPICKS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	prizePicksCircuitOpenTimeout, err := time.ParseDuration(getEnv("PRIZEPICKS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIZEPICKS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if prizePicksCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PRIZEPICKS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	prizePicksCircuitHalfOpenMaxReq, err := getEnvAsInt("PRIZEPICKS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIZEPICKS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if prizePicksCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PRIZEPICKS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	fetchWorkers, err := getEnvAsInt("APP_FETCH_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_FETCH_WORKERS: %w", err)
	}
	if fetchWorkers < 1 {
		return Config{}, fmt.Errorf("APP_FETCH_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                          appEnv,
		ServiceName:                     getEnv("APP_SERVICE_NAME", "fivelegflex-api"),
		ServiceVersion:                  getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                        getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:              splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		FetchWorkers:                    fetchWorkers,
		PprofEnabled:                    pprofEnabled,
		PprofAddr:                       pprofAddr,
		UptraceEnabled:                  uptraceEnabled,
		UptraceDSN:                      uptraceDSN,
		UptraceLogsEnabled:              uptraceLogsEnabled,
		BetterStackEnabled:              betterStackEnabled,
		BetterStackEndpoint:             betterStackEndpoint,
		BetterStackToken:                strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:              betterStackTimeout,
		BetterStackMinLevel:             betterStackMinLevel,
		PyroscopeEnabled:                pyroscopeEnabled,
		PyroscopeServerAddress:          pyroscopeServerAddress,
		PyroscopeAuthToken:              strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:          strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:             pyroscopeUploadRate,
		OddsAPIBaseURL:                  strings.TrimSpace(getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com")),
		OddsAPIKey:                      oddsAPIKey,
		OddsAPIRegions:                  strings.TrimSpace(getEnv("ODDS_API_REGIONS", "us")),
		OddsAPITimeout:                  oddsAPITimeout,
		OddsAPIMaxRetries:               oddsAPIMaxRetries,
		OddsAPICircuitEnabled:           oddsAPICircuitEnabled,
		OddsAPICircuitFailureCount:      oddsAPICircuitFailureCount,
		OddsAPICircuitOpenTimeout:       oddsAPICircuitOpenTimeout,
		OddsAPICircuitHalfOpenMaxReq:    oddsAPICircuitHalfOpenMaxReq,
		PrizePicksBaseURL:               strings.TrimSpace(getEnv("PRIZEPICKS_BASE_URL", "https://partner-api.prizepicks.com")),
		PrizePicksTimeout:               prizePicksTimeout,
		PrizePicksMaxRetries:            prizePicksMaxRetries,
		PrizePicksCircuitEnabled:        prizePicksCircuitEnabled,
		PrizePicksCircuitFailureCount:   prizePicksCircuitFailureCount,
		PrizePicksCircuitOpenTimeout:    prizePicksCircuitOpenTimeout,
		PrizePicksCircuitHalfOpenMaxReq: prizePicksCircuitHalfOpenMaxReq,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
