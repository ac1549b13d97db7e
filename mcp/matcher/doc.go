// Package matcher implements the tool name patterns used to enable tools.
package matcher
