package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort           = 8080
	DefaultHost           = "127.0.0.1"
	DefaultLogLevel       = "info"
	DefaultMaxFileSize    = 100 * 1024 * 1024 // 100MB
	DefaultResponses      = 10
	DefaultSeed           = 42
	DefaultDedupPrefixLen = 50

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the survey MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Questionnaire configuration
	SurveyDirectory string
	OutputDirectory string
	Responses       int   // Synthetic responses per questionnaire
	Seed            int64 // Random seed for synthetic data
	DedupPrefixLen  int   // Question dedup key prefix length

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio, // Default to stdio mode for MCP compatibility
		Host:            DefaultHost,
		Port:            DefaultPort,
		SurveyDirectory: currentDir,
		OutputDirectory: "./output",
		Responses:       DefaultResponses,
		Seed:            DefaultSeed,
		DedupPrefixLen:  DefaultDedupPrefixLen,
		Version:         "1.0.0",
		ServerName:      "mcp-survey-reader",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.SurveyDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.SurveyDirectory); err == nil {
			cfg.SurveyDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MCP_SURVEY")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.SurveyDirectory)
	viper.SetDefault("output", cfg.OutputDirectory)
	viper.SetDefault("responses", cfg.Responses)
	viper.SetDefault("seed", cfg.Seed)
	viper.SetDefault("dedupprefix", cfg.DedupPrefixLen)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.SurveyDirectory, "Directory containing PDF questionnaires")
	pflag.String("output", cfg.OutputDirectory, "Directory for generated JSON artifacts")
	pflag.Int("responses", cfg.Responses, "Synthetic responses to generate per questionnaire")
	pflag.Int64("seed", cfg.Seed, "Random seed for synthetic response generation")
	pflag.Int("dedupprefix", cfg.DedupPrefixLen, "Prefix length of the question deduplication key (0 for full text)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("responses", pflag.Lookup("responses"))
	_ = viper.BindPFlag("seed", pflag.Lookup("seed"))
	_ = viper.BindPFlag("dedupprefix", pflag.Lookup("dedupprefix"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Survey Reader - A Model Context Protocol server for "+
			"extracting question schemas from PDF questionnaires\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                         "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/surveys                  "+
			"# stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --dir=/path/to/surveys    # server mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_DIR         Questionnaire directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_OUTPUT      Output directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_RESPONSES   Responses per questionnaire\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_SEED        Random seed\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_SURVEY_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.SurveyDirectory = viper.GetString("dir")
	cfg.OutputDirectory = viper.GetString("output")
	cfg.Responses = viper.GetInt("responses")
	cfg.Seed = viper.GetInt64("seed")
	cfg.DedupPrefixLen = viper.GetInt("dedupprefix")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate questionnaire directory
	if c.SurveyDirectory == "" {
		return errors.New("survey directory cannot be empty")
	}

	// Check if questionnaire directory exists, create if it doesn't
	if _, err := os.Stat(c.SurveyDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.SurveyDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create survey directory %s: %w", c.SurveyDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access survey directory %s: %w", c.SurveyDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.Responses < 0 {
		return errors.New("responses must not be negative")
	}

	if c.DedupPrefixLen < 0 {
		return errors.New("dedup prefix length must not be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, SurveyDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.SurveyDirectory, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
