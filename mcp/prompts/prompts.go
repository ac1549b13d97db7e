// Package prompts holds the tool and argument descriptions shown to MCP
// clients, keyed by their path without extension (e.g. "dbt_cli/build").
package prompts

import (
	"embed"
	"strings"
)

//go:embed dbt_cli
var content embed.FS

// Get returns the description stored under name, or an empty string.
func Get(name string) string {
	data, err := content.ReadFile(name + ".md")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
