// Package config loads YAML configuration files and .env files for
// runkit consumers, with environment variable overrides.
//
// Files are resolved from conventional locations (./config.yml,
// ./config/config.yml) unless explicit paths are given. Loaded structs
// are validated via the validation package.
package config
