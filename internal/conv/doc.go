// Package conv provides small helpers to coerce loosely typed tool arguments
// into typed inputs and to work with optional pointer fields of MCP schema
// types.
package conv
