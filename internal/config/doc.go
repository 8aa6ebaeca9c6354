// Package config loads and validates the application configuration from
// environment variables, command-line flags, and an optional JSON file,
// merged in that order. Startup validation includes the fatal length checks
// on the server's key material.
package config
