package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"scout/internal/dispatch"
	"scout/internal/tools"
	"scout/pkg/logging"
)

// serverTools converts the routing table into MCP server tools.
func serverTools(table *dispatch.Table) []mcpserver.ServerTool {
	defs := table.Definitions()
	out := make([]mcpserver.ServerTool, 0, len(defs))
	for _, def := range defs {
		out = append(out, mcpserver.ServerTool{
			Tool: mcp.Tool{
				Name:        def.Name,
				Description: def.Description,
				InputSchema: def.InputSchema,
			},
			Handler: makeHandler(table, def.Name),
		})
	}
	return out
}

// makeHandler wraps one table entry in an MCP-compatible handler.
// Argument and routing errors surface as MCP tool errors; everything
// else arrives as a structured result from the dispatch boundary.
func makeHandler(table *dispatch.Table, name string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		result, err := table.Call(ctx, name, args)
		if err != nil {
			logging.Debug("Server", "tool %s rejected: %v", name, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return convertResult(result)
	}
}

// convertResult renders a tool result for the wire. Error-status
// results become MCP tool errors so agent frameworks surface them.
func convertResult(result *tools.Result) (*mcp.CallToolResult, error) {
	if result.Status == tools.StatusError {
		return mcp.NewToolResultError(result.Error), nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
