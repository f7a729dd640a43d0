// Package config loads sheetsync settings from a YAML file, SHEETSYNC_* environment
// variables, an optional .env file and command-line flags, in increasing order of
// precedence.
package config
