package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/dbt-mcp/internal/conv"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"
)

// Tools returns MCP tool entries for every registered tool.
func (s *Service) Tools() serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	for _, name := range s.ToolNames() {
		aTool, err := s.LookupTool(name)
		if err != nil {
			continue
		}
		result = append(result, aTool)
	}
	return result
}

// LookupTool builds the MCP tool entry of the named tool.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	e, ok := s.toolEntryByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	description := e.description
	toolEntry := serverproto.ToolEntry{
		Metadata: mcpschema.Tool{
			Name:        e.name,
			Description: &description,
			InputSchema: e.inputSchema,
		},
	}
	toolName := e.name
	toolEntry.Handler = func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		output, err := s.ExecuteTool(ctx, toolName, request.Params.Arguments, s.config.CallTimeout)
		res := &mcpschema.CallToolResult{}
		if err != nil {
			res.IsError = conv.Pointer[bool](true)
			res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
				Type: "text",
				Text: err.Error(),
			})
			return res, nil
		}
		res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
			Type: "text",
			Text: output,
		})
		return res, nil
	}
	return &toolEntry, nil
}

// ExecuteTool invokes a registered tool with the supplied arguments. A
// positive timeout bounds the whole call.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}, timeout time.Duration) (string, error) {
	e, ok := s.toolEntryByName(name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %v", name)
	}
	exec, err := e.service.Method(e.method)
	if err != nil {
		return "", err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var input interface{}
	if args != nil {
		input = args
	}
	var output string
	if err := exec(ctx, input, &output); err != nil {
		return "", err
	}
	return output, nil
}
