package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aykans/runkit/validation"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig controls config resolution. Zero values enable the
// conventional search paths.
type LoaderConfig struct {
	// ConfigFile is an explicit config file path. Empty means search.
	ConfigFile string
	// EnvFile is an explicit .env file path. Empty means search.
	EnvFile string
	// EnvPrefix is the environment variable prefix for overrides.
	// Defaults to "RUNKIT".
	EnvPrefix string
}

// Load resolves and loads configuration for a service into out,
// then validates it via struct tags.
func Load(serviceName string, out any, opts LoaderConfig) error {
	return LoadWithFS(&RealFileSystem{}, serviceName, out, opts)
}

// LoadWithFS is Load with an injectable filesystem.
func LoadWithFS(fs FileSystem, serviceName string, out any, opts LoaderConfig) error {
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findConfigFile(fs, serviceName)
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = findEnvFile(fs, serviceName)
	}

	if envFile != "" {
		if err := fs.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "RUNKIT"
	}
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	return validation.Struct(out)
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile(fs FileSystem, serviceName string) string {
	searchPaths := []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func findEnvFile(fs FileSystem, serviceName string) string {
	searchPaths := []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}
