package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gsheets-mcp/internal/server"
	"github.com/teemow/gsheets-mcp/internal/sheets"
	"github.com/teemow/gsheets-mcp/internal/tools/common"
)

// RegisterSheetsTools registers all Google Sheets tools with the MCP server.
// With readOnly set, tools that modify spreadsheets are not registered.
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerSpreadsheetTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register spreadsheet tools: %w", err)
	}

	if err := registerValueTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register value tools: %w", err)
	}

	if err := registerMetadataTools(s, sc); err != nil {
		return fmt.Errorf("failed to register developer metadata tools: %w", err)
	}

	if err := registerUtilityTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register utility tools: %w", err)
	}

	return nil
}

// addOperationTool wires a tool whose arguments pass straight through to the
// named gateway operation. The response is decoded into result for typed,
// stable output; if decoding fails the raw payload is returned as-is.
func addOperationTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, result func() any) {
	handler := func(ctx context.Context, request mcp.CallToolRequest) (string, error) {
		raw, err := sc.SheetsClient().Invoke(ctx, operation, request.GetArguments())
		if err != nil {
			return "", err
		}
		return renderResult(raw, result()), nil
	}
	s.AddTool(tool, mcpserver.ToolHandlerFunc(common.InstrumentedSheetsHandler(tool.Name, operation, sc, handler)))
}

func renderResult(raw json.RawMessage, v any) string {
	if v == nil {
		return string(raw)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// utilityToolNames are the tools that exist next to the gateway operations.
var utilityToolNames = []string{"sheets_server_info", "sheets_test_connection", "sheets_refresh_token"}

func availableTools(readOnly bool) []string {
	var names []string
	for _, name := range sheets.OperationNames() {
		if readOnly && writeOperations[name] {
			continue
		}
		names = append(names, name)
	}
	for _, name := range utilityToolNames {
		if readOnly && name == "sheets_test_connection" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// writeOperations marks the gateway operations that modify spreadsheets.
// They are skipped in read-only mode.
var writeOperations = map[string]bool{
	"spreadsheets_create":                true,
	"spreadsheets_batch_update":          true,
	"values_update":                      true,
	"values_append":                      true,
	"values_clear":                       true,
	"values_batch_update":                true,
	"values_batch_clear":                 true,
	"values_batch_update_by_data_filter": true,
	"values_batch_clear_by_data_filter":  true,
}
