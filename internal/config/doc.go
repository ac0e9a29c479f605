// Package config is responsible for loading, parsing, and providing
// access to application configuration from environment variables and
// optional config files. Loaded values are validated before use.
package config
