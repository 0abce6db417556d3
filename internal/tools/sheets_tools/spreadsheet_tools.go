package sheets_tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/teemow/gsheets-mcp/internal/server"
)

// registerSpreadsheetTools registers the spreadsheets resource tools.
func registerSpreadsheetTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getTool := mcp.NewTool("spreadsheets_get",
		mcp.WithDescription("Returns the spreadsheet at the given ID"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to retrieve"),
		),
		mcp.WithArray("ranges",
			mcp.Description("A1 notation ranges to limit the returned data to (e.g. 'Sheet1!A1:C3')"),
		),
		mcp.WithBoolean("include_grid_data",
			mcp.Description("Whether to include grid (cell) data in the response"),
		),
		mcp.WithString("fields",
			mcp.Description("Field mask limiting the returned spreadsheet fields"),
		),
	)
	addOperationTool(s, sc, getTool, "spreadsheets_get", func() any { return &sheetsv4.Spreadsheet{} })

	getByFilterTool := mcp.NewTool("spreadsheets_get_by_data_filter",
		mcp.WithDescription("Returns the spreadsheet at the given ID, limited to data matching the provided filters"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to retrieve"),
		),
		mcp.WithArray("data_filters",
			mcp.Required(),
			mcp.Description("DataFilter objects selecting the ranges or metadata to return"),
		),
		mcp.WithBoolean("include_grid_data",
			mcp.Description("Whether to include grid (cell) data in the response"),
		),
	)
	addOperationTool(s, sc, getByFilterTool, "spreadsheets_get_by_data_filter", func() any { return &sheetsv4.Spreadsheet{} })

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("spreadsheets_create",
		mcp.WithDescription("Creates a spreadsheet, returning the newly created spreadsheet"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the new spreadsheet"),
		),
		mcp.WithString("locale",
			mcp.Description("Locale of the spreadsheet (e.g. 'en_US')"),
		),
		mcp.WithString("auto_recalc",
			mcp.Description("How often volatile functions recalculate (ON_CHANGE, MINUTE, HOUR)"),
		),
		mcp.WithString("time_zone",
			mcp.Description("Time zone of the spreadsheet in CLDR format (e.g. 'Europe/Berlin')"),
		),
		mcp.WithArray("sheets",
			mcp.Description("Sheet objects to create the spreadsheet with"),
		),
	)
	addOperationTool(s, sc, createTool, "spreadsheets_create", func() any { return &sheetsv4.Spreadsheet{} })

	batchUpdateTool := mcp.NewTool("spreadsheets_batch_update",
		mcp.WithDescription("Applies one or more structural updates to the spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to update"),
		),
		mcp.WithArray("requests",
			mcp.Required(),
			mcp.Description("Request objects to apply, in order (e.g. addSheet, updateCells)"),
		),
		mcp.WithBoolean("include_spreadsheet_in_response",
			mcp.Description("Whether the response should include the updated spreadsheet"),
		),
		mcp.WithArray("response_ranges",
			mcp.Description("A1 ranges limiting the spreadsheet included in the response"),
		),
		mcp.WithBoolean("response_include_grid_data",
			mcp.Description("Whether grid data should be included in the response spreadsheet"),
		),
	)
	addOperationTool(s, sc, batchUpdateTool, "spreadsheets_batch_update", func() any { return &sheetsv4.BatchUpdateSpreadsheetResponse{} })

	return nil
}
