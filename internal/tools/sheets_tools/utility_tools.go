package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/teemow/gsheets-mcp/internal/server"
	"github.com/teemow/gsheets-mcp/internal/tools/common"
)

// testSpreadsheetTitle is the title of the probe spreadsheet created by
// sheets_test_connection.
const testSpreadsheetTitle = "MCP Nango Connection Test"

// registerUtilityTools registers the server info, connection test and token
// refresh tools.
func registerUtilityTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	serverInfoTool := mcp.NewTool("sheets_server_info",
		mcp.WithDescription("Get information about the MCP server and current configuration"),
	)
	s.AddTool(serverInfoTool, mcpserver.ToolHandlerFunc(common.InstrumentedToolHandler("sheets_server_info", sc, serverInfoHandler(sc, readOnly))))

	refreshTool := mcp.NewTool("sheets_refresh_token",
		mcp.WithDescription("Manually refresh the Google access token from Nango"),
	)
	s.AddTool(refreshTool, mcpserver.ToolHandlerFunc(common.InstrumentedToolHandler("sheets_refresh_token", sc, refreshTokenHandler(sc))))

	if readOnly {
		return nil
	}

	testTool := mcp.NewTool("sheets_test_connection",
		mcp.WithDescription("Test the connection to the Google Sheets API by creating a minimal spreadsheet"),
	)
	s.AddTool(testTool, mcpserver.ToolHandlerFunc(common.InstrumentedToolHandler("sheets_test_connection", sc, testConnectionHandler(sc))))

	return nil
}

func serverInfoHandler(sc *server.ServerContext, readOnly bool) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg := sc.NangoConfig()

		authConfigured := false
		if provider := sc.TokenProvider(); provider != nil {
			if provider.Current() != nil {
				authConfigured = true
			} else if _, err := provider.Token(ctx); err == nil {
				authConfigured = true
			}
		}

		info := map[string]any{
			"server_name":     "Google Sheets API v4 MCP Server",
			"version":         sc.Version(),
			"base_url":        sc.SheetsClient().BaseURL(),
			"auth_method":     "nango_oauth",
			"auth_configured": authConfigured,
			"read_only":       readOnly,
			"environment_variables": map[string]bool{
				"nango_connection_id":  cfg.ConnectionID != "",
				"nango_integration_id": cfg.IntegrationID != "",
				"nango_base_url":       cfg.BaseURL != "",
				"nango_secret_key":     cfg.SecretKey != "",
			},
			"available_tools": availableTools(readOnly),
		}

		return jsonResult(info)
	}
}

func testConnectionHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := sc.SheetsClient().Invoke(ctx, "spreadsheets_create", map[string]any{
			"title": testSpreadsheetTitle,
		})
		if err != nil {
			return jsonResult(map[string]any{
				"success": false,
				"error":   fmt.Sprintf("Connection test failed: %v", err),
				"message": "Please check your Nango configuration and try again",
			})
		}

		var created sheetsv4.Spreadsheet
		if err := json.Unmarshal(raw, &created); err != nil {
			return jsonResult(map[string]any{
				"success": false,
				"error":   fmt.Sprintf("Connection test failed: unexpected response: %v", err),
				"message": "Please check your Nango configuration and try again",
			})
		}

		return jsonResult(map[string]any{
			"success":              true,
			"message":              "Connection test successful with Nango authentication",
			"test_spreadsheet_id":  created.SpreadsheetId,
			"test_spreadsheet_url": created.SpreadsheetUrl,
			"note":                 "A test spreadsheet was created to verify the Nango connection",
		})
	}
}

func refreshTokenHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		token, err := sc.TokenProvider().ForceRefresh(ctx)
		if err != nil {
			return jsonResult(map[string]any{
				"success": false,
				"error":   fmt.Sprintf("Nango token refresh failed: %v", err),
				"message": "Please check your Nango configuration",
			})
		}

		return jsonResult(map[string]any{
			"success":      true,
			"message":      "Token refreshed successfully from Nango",
			"token_length": len(token),
			"refresh_time": time.Now().Format(time.RFC3339),
		})
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
