package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Result is the structured outcome every tool invocation returns.
// Backend failures are folded into an error-status result at the
// provider boundary instead of propagating, so multi-provider fan-outs
// always yield partial results.
type Result struct {
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Result status values.
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusUnsupported = "unsupported"
)

// OK wraps data in a success result.
func OK(data interface{}) *Result {
	return &Result{Status: StatusOK, Data: data}
}

// Errorf builds an error-status result.
func Errorf(format string, args ...interface{}) *Result {
	return &Result{Status: StatusError, Error: fmt.Sprintf(format, args...)}
}

// Unsupported marks an operation the target backend cannot serve; it is
// an explicit outcome, not a failure.
func Unsupported(operation string) *Result {
	return &Result{Status: StatusUnsupported, Error: fmt.Sprintf("%s is not supported by this target", operation)}
}

// Handler executes one tool invocation. Handlers close over their
// target identity and owning connection; errors returned here are
// programmer errors (such as a missing required argument) and
// propagate, while backend failures come back as error-status Results.
type Handler func(ctx context.Context, args map[string]interface{}) (*Result, error)

// Definition is one externally invocable tool: a session-unique name, a
// human-oriented description embedding the target identity, a JSON
// schema for the arguments, and the invocation itself. Definitions are
// immutable after creation.
type Definition struct {
	Name        string
	Description string
	InputSchema mcp.ToolInputSchema
	Handler     Handler
}

// Arg describes one tool argument for schema construction.
type Arg struct {
	Name        string
	Type        string // "string", "number", "integer", "boolean", "object"
	Required    bool
	Description string
	Default     interface{}
	Enum        []string
}

// Schema builds an MCP input schema from argument metadata. The schema
// is always an object type with properties/required, matching the
// function-calling contract consumed by the reasoning agent.
func Schema(args ...Arg) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	required := []string{}

	for _, a := range args {
		propSchema := map[string]interface{}{
			"type":        a.Type,
			"description": a.Description,
		}
		if a.Default != nil {
			propSchema["default"] = a.Default
		}
		if len(a.Enum) > 0 {
			propSchema["enum"] = a.Enum
		}
		properties[a.Name] = propSchema

		if a.Required {
			required = append(required, a.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
