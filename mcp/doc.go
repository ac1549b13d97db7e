// Package mcp exposes the dbt CLI as MCP tools.  Its central Service type
// loads configuration, builds the dbt action service, derives one MCP tool per
// action method and can serve them through an MCP server handler.
package mcp
