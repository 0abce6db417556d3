package sheets_tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/teemow/gsheets-mcp/internal/server"
)

// registerValueTools registers the values resource tools.
func registerValueTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerValueReadTools(s, sc)
	if !readOnly {
		registerValueWriteTools(s, sc)
	}
	return nil
}

func registerValueReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	getTool := mcp.NewTool("values_get",
		mcp.WithDescription("Returns a range of values from a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to read from"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range to read (e.g. 'Sheet1!A1:C3')"),
		),
		mcp.WithString("major_dimension",
			mcp.Description("Major dimension of the result (ROWS or COLUMNS)"),
		),
		mcp.WithString("value_render_option",
			mcp.Description("How values are rendered (FORMATTED_VALUE, UNFORMATTED_VALUE, FORMULA)"),
		),
		mcp.WithString("date_time_render_option",
			mcp.Description("How dates and times are rendered (SERIAL_NUMBER, FORMATTED_STRING)"),
		),
	)
	addOperationTool(s, sc, getTool, "values_get", func() any { return &sheetsv4.ValueRange{} })

	batchGetTool := mcp.NewTool("values_batch_get",
		mcp.WithDescription("Returns one or more ranges of values from a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to read from"),
		),
		mcp.WithArray("ranges",
			mcp.Required(),
			mcp.Description("A1 notation ranges to read"),
		),
		mcp.WithString("major_dimension",
			mcp.Description("Major dimension of the results (ROWS or COLUMNS)"),
		),
		mcp.WithString("value_render_option",
			mcp.Description("How values are rendered (FORMATTED_VALUE, UNFORMATTED_VALUE, FORMULA)"),
		),
		mcp.WithString("date_time_render_option",
			mcp.Description("How dates and times are rendered (SERIAL_NUMBER, FORMATTED_STRING)"),
		),
	)
	addOperationTool(s, sc, batchGetTool, "values_batch_get", func() any { return &sheetsv4.BatchGetValuesResponse{} })

	batchGetByFilterTool := mcp.NewTool("values_batch_get_by_data_filter",
		mcp.WithDescription("Returns one or more ranges of values that match the specified data filters"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to read from"),
		),
		mcp.WithArray("data_filters",
			mcp.Required(),
			mcp.Description("DataFilter objects selecting the ranges to read"),
		),
		mcp.WithString("major_dimension",
			mcp.Description("Major dimension of the results (ROWS or COLUMNS)"),
		),
		mcp.WithString("value_render_option",
			mcp.Description("How values are rendered (FORMATTED_VALUE, UNFORMATTED_VALUE, FORMULA)"),
		),
		mcp.WithString("date_time_render_option",
			mcp.Description("How dates and times are rendered (SERIAL_NUMBER, FORMATTED_STRING)"),
		),
	)
	addOperationTool(s, sc, batchGetByFilterTool, "values_batch_get_by_data_filter", func() any { return &sheetsv4.BatchGetValuesByDataFilterResponse{} })
}

func registerValueWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	updateTool := mcp.NewTool("values_update",
		mcp.WithDescription("Sets values in a range of a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to update"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range to write (e.g. 'Sheet1!A1:C3')"),
		),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("Matrix of cell values, outer list per row"),
		),
		mcp.WithString("value_input_option",
			mcp.Description("How input is interpreted: RAW or USER_ENTERED (default USER_ENTERED)"),
		),
		mcp.WithString("major_dimension",
			mcp.Description("Dimension the values matrix follows: ROWS (default) or COLUMNS"),
		),
		mcp.WithBoolean("include_values_in_response",
			mcp.Description("Whether the response should include the updated values"),
		),
		mcp.WithString("response_value_render_option",
			mcp.Description("How returned values are rendered"),
		),
		mcp.WithString("response_date_time_render_option",
			mcp.Description("How returned dates and times are rendered"),
		),
	)
	addOperationTool(s, sc, updateTool, "values_update", func() any { return &sheetsv4.UpdateValuesResponse{} })

	appendTool := mcp.NewTool("values_append",
		mcp.WithDescription("Appends values after a table of data in a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to append to"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range locating the table to append to"),
		),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("Matrix of cell values, outer list per row"),
		),
		mcp.WithString("value_input_option",
			mcp.Description("How input is interpreted: RAW or USER_ENTERED (default USER_ENTERED)"),
		),
		mcp.WithString("major_dimension",
			mcp.Description("Dimension the values matrix follows: ROWS (default) or COLUMNS"),
		),
		mcp.WithString("insert_data_option",
			mcp.Description("How the input is inserted (OVERWRITE or INSERT_ROWS)"),
		),
		mcp.WithBoolean("include_values_in_response",
			mcp.Description("Whether the response should include the appended values"),
		),
		mcp.WithString("response_value_render_option",
			mcp.Description("How returned values are rendered"),
		),
		mcp.WithString("response_date_time_render_option",
			mcp.Description("How returned dates and times are rendered"),
		),
	)
	addOperationTool(s, sc, appendTool, "values_append", func() any { return &sheetsv4.AppendValuesResponse{} })

	clearTool := mcp.NewTool("values_clear",
		mcp.WithDescription("Clears values from a range of a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to clear"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range to clear"),
		),
	)
	addOperationTool(s, sc, clearTool, "values_clear", func() any { return &sheetsv4.ClearValuesResponse{} })

	batchUpdateTool := mcp.NewTool("values_batch_update",
		mcp.WithDescription("Sets values in one or more ranges of a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to update"),
		),
		mcp.WithArray("data",
			mcp.Required(),
			mcp.Description("ValueRange objects, each with 'range' and 'values'"),
		),
		mcp.WithString("value_input_option",
			mcp.Description("How input is interpreted: RAW or USER_ENTERED (default USER_ENTERED)"),
		),
		mcp.WithBoolean("include_values_in_response",
			mcp.Description("Whether the response should include the updated values"),
		),
		mcp.WithString("response_value_render_option",
			mcp.Description("How returned values are rendered"),
		),
		mcp.WithString("response_date_time_render_option",
			mcp.Description("How returned dates and times are rendered"),
		),
	)
	addOperationTool(s, sc, batchUpdateTool, "values_batch_update", func() any { return &sheetsv4.BatchUpdateValuesResponse{} })

	batchClearTool := mcp.NewTool("values_batch_clear",
		mcp.WithDescription("Clears one or more ranges of values from a spreadsheet"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to clear"),
		),
		mcp.WithArray("ranges",
			mcp.Required(),
			mcp.Description("A1 notation ranges to clear"),
		),
	)
	addOperationTool(s, sc, batchClearTool, "values_batch_clear", func() any { return &sheetsv4.BatchClearValuesResponse{} })

	batchUpdateByFilterTool := mcp.NewTool("values_batch_update_by_data_filter",
		mcp.WithDescription("Sets values in one or more ranges of a spreadsheet selected by data filters"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to update"),
		),
		mcp.WithArray("data",
			mcp.Required(),
			mcp.Description("DataFilterValueRange objects, each with 'dataFilter' and 'values'"),
		),
		mcp.WithString("value_input_option",
			mcp.Description("How input is interpreted: RAW or USER_ENTERED (default USER_ENTERED)"),
		),
		mcp.WithBoolean("include_values_in_response",
			mcp.Description("Whether the response should include the updated values"),
		),
		mcp.WithString("response_value_render_option",
			mcp.Description("How returned values are rendered"),
		),
		mcp.WithString("response_date_time_render_option",
			mcp.Description("How returned dates and times are rendered"),
		),
	)
	addOperationTool(s, sc, batchUpdateByFilterTool, "values_batch_update_by_data_filter", func() any { return &sheetsv4.BatchUpdateValuesByDataFilterResponse{} })

	batchClearByFilterTool := mcp.NewTool("values_batch_clear_by_data_filter",
		mcp.WithDescription("Clears one or more ranges of values selected by data filters"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to clear"),
		),
		mcp.WithArray("data_filters",
			mcp.Required(),
			mcp.Description("DataFilter objects selecting the ranges to clear"),
		),
	)
	addOperationTool(s, sc, batchClearByFilterTool, "values_batch_clear_by_data_filter", func() any { return &sheetsv4.BatchClearValuesByDataFilterResponse{} })
}
