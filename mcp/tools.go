package mcp

import (
	"reflect"

	"github.com/viant/dbt-mcp/mcp/dbtcli"
	"github.com/viant/dbt-mcp/mcp/matcher"
	"github.com/viant/fluxor/model/types"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// toolEntry holds metadata of one MCP tool derived from an action method.
type toolEntry struct {
	name        string
	description string
	inputSchema mcpschema.ToolInputSchema
	service     types.Service
	method      string
}

// argumentDescriber is implemented by services documenting their input
// properties.
type argumentDescriber interface {
	Arguments(method string) []dbtcli.Argument
}

// enabled reports whether a tool name matches one of the configured patterns
// and is not explicitly disabled.
func (s *Service) enabled(name string) bool {
	for _, disabled := range s.config.DisabledTools {
		if disabled == name {
			return false
		}
	}
	for _, pattern := range s.config.Tools {
		if matcher.Match(pattern, name) {
			return true
		}
	}
	return false
}

// addToolEntries appends tool entries to the registry, skipping duplicates so
// that the first definition of a name wins.
func (s *Service) addToolEntries(entries []toolEntry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.tools))
	for _, e := range s.tools {
		existing[e.name] = struct{}{}
	}
	for _, e := range entries {
		if _, dup := existing[e.name]; dup {
			continue
		}
		s.tools = append(s.tools, e)
		existing[e.name] = struct{}{}
	}
}

// serviceToToolEntries converts the enabled methods of a single action
// service to tool entries named after the method.
func serviceToToolEntries(svc types.Service, enabled func(string) bool) []toolEntry {
	describer, _ := svc.(argumentDescriber)
	entries := make([]toolEntry, 0, len(svc.Methods()))
	for _, sig := range svc.Methods() {
		if !enabled(sig.Name) {
			continue
		}
		var arguments []dbtcli.Argument
		if describer != nil {
			arguments = describer.Arguments(sig.Name)
		}
		entries = append(entries, toolEntry{
			name:        sig.Name,
			description: sig.Description,
			inputSchema: buildInputSchema(sig.Input, arguments),
			service:     svc,
			method:      sig.Name,
		})
	}
	return entries
}

// buildInputSchema derives the JSON schema of an input type via reflection and
// overlays argument descriptions and required flags.
func buildInputSchema(input reflect.Type, arguments []dbtcli.Argument) mcpschema.ToolInputSchema {
	var inputSchema mcpschema.ToolInputSchema
	if input != nil {
		var sample interface{}
		if input.Kind() == reflect.Pointer {
			sample = reflect.New(input.Elem()).Interface()
		} else {
			sample = reflect.New(input).Interface()
		}
		_ = inputSchema.Load(sample)
	}
	inputSchema.Type = "object"
	if inputSchema.Properties == nil {
		inputSchema.Properties = map[string]map[string]interface{}{}
	}
	inputSchema.Required = nil
	for _, argument := range arguments {
		property := inputSchema.Properties[argument.Name]
		if property == nil {
			property = map[string]interface{}{}
			inputSchema.Properties[argument.Name] = property
		}
		if _, ok := property["type"]; !ok && argument.Type != "" {
			property["type"] = argument.Type
		}
		if argument.Description != "" {
			property["description"] = argument.Description
		}
		if argument.Required {
			inputSchema.Required = append(inputSchema.Required, argument.Name)
		}
	}
	return inputSchema
}
