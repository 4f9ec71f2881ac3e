package tools

import (
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// jsonResult returns a one-line summary followed by v as indented JSON
func jsonResult(summary string, v any) *sdkmcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	return textResult(summary + "\n" + string(b))
}

// errorResult reports a failure to the model without failing the protocol call
func errorResult(err error) *sdkmcp.CallToolResult {
	res := textResult(err.Error())
	res.IsError = true
	return res
}
