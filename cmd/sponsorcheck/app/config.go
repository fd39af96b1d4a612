package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/sponsorcheck/pkg/constants"
	"github.com/agentstation/sponsorcheck/pkg/errors"
)

// requiredKeys are the credentials without which the run cannot start.
var requiredKeys = []string{
	"SANITY_PROJECT_ID",
	"SANITY_DATASET",
	"SANITY_API_TOKEN",
}

// Config holds the application configuration loaded from environment
// variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Document-store credentials (required)
	ProjectID string
	Dataset   string
	Token     string

	// Perspective is the optional query perspective; invalid or unset values
	// fall back to the default.
	Perspective string

	// DirectoryEndpoint overrides the profile directory GraphQL endpoint.
	DirectoryEndpoint string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindCredentialKeys()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ProjectID:   viper.GetString("SANITY_PROJECT_ID"),
		Dataset:     viper.GetString("SANITY_DATASET"),
		Token:       viper.GetString("SANITY_API_TOKEN"),
		Perspective: normalizePerspective(viper.GetString("SANITY_PERSPECTIVE")),

		DirectoryEndpoint: viper.GetString("DIRECTORY_GRAPHQL_URL"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.DirectoryEndpoint == "" {
		config.DirectoryEndpoint = constants.DefaultDirectoryEndpoint
	}

	return config, nil
}

// ValidateRequired fails fast when any required credential is missing.
// Every missing key is named in the error so one run surfaces them all.
func (c *Config) ValidateRequired() error {
	var missing []string
	if c.ProjectID == "" {
		missing = append(missing, "SANITY_PROJECT_ID")
	}
	if c.Dataset == "" {
		missing = append(missing, "SANITY_DATASET")
	}
	if c.Token == "" {
		missing = append(missing, "SANITY_API_TOKEN")
	}
	if len(missing) > 0 {
		return errors.NewConfigError("loader",
			"missing required keys: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags. Flag
// values take precedence over env vars and .env files.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// normalizePerspective validates the optional perspective value. Anything
// other than the two supported literals falls back to the default.
func normalizePerspective(p string) string {
	switch p {
	case constants.PerspectivePublished, constants.PerspectivePreviewDrafts:
		return p
	default:
		return constants.DefaultPerspective
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindCredentialKeys explicitly binds the credential environment variables to
// Viper so they survive the key replacer.
func bindCredentialKeys() {
	keys := []string{
		"SANITY_PROJECT_ID",
		"SANITY_DATASET",
		"SANITY_API_TOKEN",
		"SANITY_PERSPECTIVE",
		"DIRECTORY_GRAPHQL_URL",
	}

	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			// Not critical; the run will fail later with a clearer error.
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
