// Package config defines the YAML/JSON configuration model of the dbt MCP
// server together with helpers to load it, overlay environment variables and
// validate the result.
package config
