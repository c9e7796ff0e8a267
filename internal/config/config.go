// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App         AppConfig
	Logger      LoggerConfig
	Server      ServerConfig
	Cosmic      CosmicConfig
	OpenAI      OpenAIConfig
	OpenLibrary OpenLibraryConfig
	Upload      UploadConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 120s; analysis runs inside a request)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// CosmicConfig holds Cosmic bucket credentials.
type CosmicConfig struct {
	BucketSlug string
	ReadKey    string
	WriteKey   string
	APIURL     string // Optional endpoint override, used in tests
	UploadURL  string // Optional endpoint override, used in tests
}

// OpenAIConfig holds vision model configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // default: gpt-4o
	BaseURL string // Optional endpoint override, used in tests
}

// OpenLibraryConfig holds cover lookup configuration.
type OpenLibraryConfig struct {
	BaseURL string // Optional endpoint override, used in tests
}

// UploadConfig holds image upload limits.
type UploadConfig struct {
	MaxSizeBytes int64 // default: 10MB
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	flags := flag.NewFlagSet("shelfscan", flag.ContinueOnError)

	env := flags.String("env", "", "Environment (development, staging, production)")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")
	serverPort := flags.String("port", "", "Server port (default: 8080)")
	readTimeout := flags.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flags.String("write-timeout", "", "HTTP write timeout (default: 120s)")
	idleTimeout := flags.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	bucketSlug := flags.String("cosmic-bucket", "", "Cosmic bucket slug")
	openaiModel := flags.String("openai-model", "", "Vision model name (default: gpt-4o)")

	envFile := flags.String("env-file", ".env", "Path to .env file")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Cosmic: CosmicConfig{
			BucketSlug: getConfigValue(*bucketSlug, "COSMIC_BUCKET_SLUG", ""),
			ReadKey:    getConfigValue("", "COSMIC_READ_KEY", ""),
			WriteKey:   getConfigValue("", "COSMIC_WRITE_KEY", ""),
			APIURL:     getConfigValue("", "COSMIC_API_URL", ""),
			UploadURL:  getConfigValue("", "COSMIC_UPLOAD_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getConfigValue("", "OPENAI_API_KEY", ""),
			Model:   getConfigValue(*openaiModel, "OPENAI_MODEL", "gpt-4o"),
			BaseURL: getConfigValue("", "OPENAI_API_URL", ""),
		},
		OpenLibrary: OpenLibraryConfig{
			BaseURL: getConfigValue("", "OPENLIBRARY_API_URL", ""),
		},
		Upload: UploadConfig{
			MaxSizeBytes: getInt64ConfigValue("", "UPLOAD_MAX_SIZE_BYTES", 10*1024*1024),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	// Analysis runs synchronously inside the request, so the write timeout
	// has to cover the full vision round-trip.
	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "120s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Cosmic.BucketSlug == "" {
		return errors.New("COSMIC_BUCKET_SLUG is required")
	}
	if c.Cosmic.ReadKey == "" {
		return errors.New("COSMIC_READ_KEY is required")
	}
	if c.Cosmic.WriteKey == "" {
		return errors.New("COSMIC_WRITE_KEY is required")
	}
	if c.OpenAI.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return errors.New("upload max size must be positive")
	}

	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getInt64ConfigValue returns an int64 from flag, env var, or default.
func getInt64ConfigValue(flagValue, envKey string, defaultValue int64) int64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int64
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
