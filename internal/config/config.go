package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Default ops server settings (health/readiness endpoints)
	DefaultServerHost = "localhost"
	DefaultServerPort = 3000

	// Default ops HTTP server timeouts
	DefaultReadTimeout    = 15 * time.Second
	DefaultWriteTimeout   = 15 * time.Second
	DefaultIdleTimeout    = 60 * time.Second
	DefaultMaxHeaderBytes = 1 << 20 // 1MB

	// Default MCP settings
	DefaultMCPName      = "DraCor API v1"
	DefaultMCPTransport = TransportStdio
	DefaultMCPHTTPAddr  = "127.0.0.1:9000"
	DefaultMaxTools     = 128

	// Default DraCor API settings
	DefaultAPIBaseURL = "https://staging.dracor.org/api/v1"
	DefaultAPITimeout = 5 * time.Minute
	DefaultAdminUser  = "admin"
)

// MCP transport modes
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration for the DraCor MCP server
type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	MCP    MCPConfig
	DraCor DraCorConfig
}

// ServerConfig holds the ops HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// LoggerConfig controls structured log output
type LoggerConfig struct {
	Level   string
	Format  string
	Service string
	Version string
}

// MCPConfig holds the MCP serving configuration
type MCPConfig struct {
	Name      string
	Version   string
	Transport string
	HTTPAddr  string
	MaxTools  int
}

// DraCorConfig holds the settings for the remote DraCor API
type DraCorConfig struct {
	BaseURL       string
	AdminUser     string
	AdminPassword string
	Timeout       time.Duration
}

// FrontendBaseURL derives the DraCor frontend base from the API base URL.
// The frontend lives at the part of the URL before the "/api/" segment.
func (d DraCorConfig) FrontendBaseURL() string {
	if idx := strings.Index(d.BaseURL, "/api/"); idx != -1 {
		return d.BaseURL[:idx]
	}
	return d.BaseURL
}

// ValidationErrors collects all failed checks from Validate
type ValidationErrors []string

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	if len(ve) == 1 {
		return ve[0]
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(ve, "; "))
}

// FileConfig mirrors the YAML layout of a config file
type FileConfig struct {
	Server FileServerConfig `yaml:"server"`
	Logger FileLoggerConfig `yaml:"logger"`
	MCP    FileMCPConfig    `yaml:"mcp"`
	DraCor FileDraCorConfig `yaml:"dracor"`
}

type FileServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	ReadTimeout    string `yaml:"read_timeout"`
	WriteTimeout   string `yaml:"write_timeout"`
	IdleTimeout    string `yaml:"idle_timeout"`
	MaxHeaderBytes int    `yaml:"max_header_bytes"`
}

type FileLoggerConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Service string `yaml:"service"`
	Version string `yaml:"version"`
}

type FileMCPConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"`
	HTTPAddr  string `yaml:"http_addr"`
	MaxTools  int    `yaml:"max_tools"`
}

type FileDraCorConfig struct {
	BaseURL   string `yaml:"base_url"`
	AdminUser string `yaml:"admin_user"`
	Timeout   string `yaml:"timeout"`
}

// configFilePath returns the file named by DRACOR_CONFIG_FILE, or the
// first default location that exists.
func configFilePath() string {
	if path := os.Getenv("DRACOR_CONFIG_FILE"); path != "" {
		return path
	}

	candidates := []string{
		"configs/development.yaml",
		"configs/production.yaml",
		"configs/docker.yaml",
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// loadConfigFile parses the YAML config file when one is present.
// A missing file is not an error; the defaults and environment cover it.
func loadConfigFile() (*FileConfig, error) {
	path := configFilePath()
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &file, nil
}

// overrideString applies a file value unless the environment variable
// already set one.
func overrideString(dst *string, value, envKey string) {
	if value != "" && os.Getenv(envKey) == "" {
		*dst = value
	}
}

func overrideInt(dst *int, value int, envKey string) {
	if value != 0 && os.Getenv(envKey) == "" {
		*dst = value
	}
}

func overrideDuration(dst *time.Duration, value, envKey string) {
	if value == "" || os.Getenv(envKey) != "" {
		return
	}
	if d, err := time.ParseDuration(value); err == nil {
		*dst = d
	}
}

// mergeFileConfig layers file values over the base configuration.
// A set environment variable always wins over the file.
func mergeFileConfig(base *Config, file *FileConfig) *Config {
	if file == nil {
		return base
	}

	result := *base

	overrideString(&result.Server.Host, file.Server.Host, "DRACOR_SERVER_HOST")
	overrideInt(&result.Server.Port, file.Server.Port, "DRACOR_SERVER_PORT")
	overrideDuration(&result.Server.ReadTimeout, file.Server.ReadTimeout, "DRACOR_SERVER_READ_TIMEOUT")
	overrideDuration(&result.Server.WriteTimeout, file.Server.WriteTimeout, "DRACOR_SERVER_WRITE_TIMEOUT")
	overrideDuration(&result.Server.IdleTimeout, file.Server.IdleTimeout, "DRACOR_SERVER_IDLE_TIMEOUT")
	overrideInt(&result.Server.MaxHeaderBytes, file.Server.MaxHeaderBytes, "DRACOR_SERVER_MAX_HEADER_BYTES")

	overrideString(&result.Logger.Level, file.Logger.Level, "DRACOR_LOG_LEVEL")
	overrideString(&result.Logger.Format, file.Logger.Format, "DRACOR_LOG_FORMAT")
	overrideString(&result.Logger.Service, file.Logger.Service, "DRACOR_SERVICE_NAME")
	overrideString(&result.Logger.Version, file.Logger.Version, "DRACOR_VERSION")

	overrideString(&result.MCP.Name, file.MCP.Name, "DRACOR_MCP_NAME")
	overrideString(&result.MCP.Version, file.MCP.Version, "DRACOR_VERSION")
	overrideString(&result.MCP.Transport, file.MCP.Transport, "DRACOR_MCP_TRANSPORT")
	overrideString(&result.MCP.HTTPAddr, file.MCP.HTTPAddr, "DRACOR_MCP_HTTP_ADDR")
	overrideInt(&result.MCP.MaxTools, file.MCP.MaxTools, "DRACOR_MCP_MAX_TOOLS")

	// The admin password never comes from a file; DRACOR_EXISTDB_PWD is
	// the only source.
	overrideString(&result.DraCor.BaseURL, file.DraCor.BaseURL, "DRACOR_API_BASE_URL")
	overrideString(&result.DraCor.AdminUser, file.DraCor.AdminUser, "DRACOR_EXISTDB_ADMIN")
	overrideDuration(&result.DraCor.Timeout, file.DraCor.Timeout, "DRACOR_API_TIMEOUT")

	return &result
}

// Load resolves the configuration from defaults, an optional YAML file
// and environment variables. Environment variables win over the file,
// the file wins over defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("DRACOR_SERVER_HOST", DefaultServerHost),
			Port:           getEnvInt("DRACOR_SERVER_PORT", DefaultServerPort),
			ReadTimeout:    getEnvDuration("DRACOR_SERVER_READ_TIMEOUT", DefaultReadTimeout),
			WriteTimeout:   getEnvDuration("DRACOR_SERVER_WRITE_TIMEOUT", DefaultWriteTimeout),
			IdleTimeout:    getEnvDuration("DRACOR_SERVER_IDLE_TIMEOUT", DefaultIdleTimeout),
			MaxHeaderBytes: getEnvInt("DRACOR_SERVER_MAX_HEADER_BYTES", DefaultMaxHeaderBytes),
		},
		Logger: LoggerConfig{
			Level:   getEnv("DRACOR_LOG_LEVEL", "info"),
			Format:  getEnv("DRACOR_LOG_FORMAT", "json"),
			Service: getEnv("DRACOR_SERVICE_NAME", "dracor-mcp"),
			Version: getEnv("DRACOR_VERSION", "dev"),
		},
		MCP: MCPConfig{
			Name:      getEnv("DRACOR_MCP_NAME", DefaultMCPName),
			Version:   getEnv("DRACOR_VERSION", "dev"),
			Transport: getEnv("DRACOR_MCP_TRANSPORT", DefaultMCPTransport),
			HTTPAddr:  getEnv("DRACOR_MCP_HTTP_ADDR", DefaultMCPHTTPAddr),
			MaxTools:  getEnvInt("DRACOR_MCP_MAX_TOOLS", DefaultMaxTools),
		},
		DraCor: DraCorConfig{
			BaseURL:       strings.TrimRight(getEnv("DRACOR_API_BASE_URL", DefaultAPIBaseURL), "/"),
			AdminUser:     getEnv("DRACOR_EXISTDB_ADMIN", DefaultAdminUser),
			AdminPassword: os.Getenv("DRACOR_EXISTDB_PWD"),
			Timeout:       getEnvDuration("DRACOR_API_TIMEOUT", DefaultAPITimeout),
		},
	}

	fileConfig, err := loadConfigFile()
	if err != nil {
		// The logger is not up yet, so the warning goes straight to stderr.
		fmt.Fprintf(os.Stderr, "Warning: config file ignored: %v\n", err)
	}

	cfg = mergeFileConfig(cfg, fileConfig)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var problems ValidationErrors
	problems = append(problems, c.Server.validate()...)
	problems = append(problems, c.Logger.validate()...)
	problems = append(problems, c.MCP.validate()...)
	problems = append(problems, c.DraCor.validate()...)

	if len(problems) > 0 {
		return problems
	}
	return nil
}

func (s ServerConfig) validate() []string {
	var problems []string

	if s.Host == "" {
		problems = append(problems, "server host cannot be empty (hint: 'localhost' for a local setup)")
	}

	if s.Port < 1 || s.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server port must be between 1 and 65535, got %d (hint: the ops server defaults to 3000)", s.Port))
	}

	if s.ReadTimeout < 0 {
		problems = append(problems, fmt.Sprintf("server read timeout cannot be negative, got %v", s.ReadTimeout))
	} else if s.ReadTimeout > 5*time.Minute {
		problems = append(problems, fmt.Sprintf("server read timeout %v is unusually large (hint: 15s-60s covers most setups)", s.ReadTimeout))
	}

	if s.WriteTimeout < 0 {
		problems = append(problems, fmt.Sprintf("server write timeout cannot be negative, got %v", s.WriteTimeout))
	} else if s.WriteTimeout > 5*time.Minute {
		problems = append(problems, fmt.Sprintf("server write timeout %v is unusually large (hint: 15s-60s covers most setups)", s.WriteTimeout))
	}

	if s.IdleTimeout < 0 {
		problems = append(problems, fmt.Sprintf("server idle timeout cannot be negative, got %v", s.IdleTimeout))
	}

	// The ops endpoints answer in milliseconds; request timeouts longer
	// than the idle timeout point at a misconfiguration.
	if s.ReadTimeout > 0 && s.IdleTimeout > 0 && s.ReadTimeout >= s.IdleTimeout {
		problems = append(problems, fmt.Sprintf("read timeout %v must stay below idle timeout %v", s.ReadTimeout, s.IdleTimeout))
	}
	if s.WriteTimeout > 0 && s.IdleTimeout > 0 && s.WriteTimeout >= s.IdleTimeout {
		problems = append(problems, fmt.Sprintf("write timeout %v must stay below idle timeout %v", s.WriteTimeout, s.IdleTimeout))
	}

	if s.MaxHeaderBytes < 1 {
		problems = append(problems, fmt.Sprintf("server max header bytes must be positive, got %d (hint: 1048576 is 1MB)", s.MaxHeaderBytes))
	} else if s.MaxHeaderBytes > 10*1024*1024 {
		problems = append(problems, fmt.Sprintf("server max header bytes %d is unusually large (hint: 1MB-8MB is plenty)", s.MaxHeaderBytes))
	}

	return problems
}

func (l LoggerConfig) validate() []string {
	var problems []string

	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level: %s (valid levels: debug, info, warn, error)", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format: %s (valid formats: json, text)", l.Format))
	}

	return problems
}

func (m MCPConfig) validate() []string {
	var problems []string

	if m.Name == "" {
		problems = append(problems, "mcp server name cannot be empty")
	}

	switch m.Transport {
	case TransportStdio, TransportHTTP:
	default:
		problems = append(problems, fmt.Sprintf("invalid mcp transport: %s (valid transports: stdio, http)", m.Transport))
	}

	if m.Transport == TransportHTTP {
		if _, _, err := net.SplitHostPort(m.HTTPAddr); err != nil {
			problems = append(problems, fmt.Sprintf("invalid mcp http address: %s (hint: host:port, e.g. 127.0.0.1:9000)", m.HTTPAddr))
		}
	}

	if m.MaxTools < 1 {
		problems = append(problems, fmt.Sprintf("mcp max tools must be positive, got %d", m.MaxTools))
	}

	return problems
}

func (d DraCorConfig) validate() []string {
	var problems []string

	if d.BaseURL == "" {
		problems = append(problems, "dracor api base url cannot be empty (hint: https://staging.dracor.org/api/v1)")
	} else if parsed, err := url.Parse(d.BaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid dracor api base url: %s (hint: must be an absolute http(s) URL)", d.BaseURL))
	}

	if d.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("dracor api timeout must be positive, got %v (hint: large TEI downloads need minutes)", d.Timeout))
	}

	return problems
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt falls back when the variable is unset or not an integer.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration falls back when the variable is unset or not a duration.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
