// Package sheets_tools provides MCP tools for the Google Sheets API v4,
// authenticated through Nango.
//
// Each tool maps onto one operation of the gateway client in
// internal/sheets; argument validation, request building and error
// classification all happen there. Handlers decode responses into the
// typed structs of google.golang.org/api/sheets/v4 and return them as
// indented JSON.
//
// # Available Tools
//
// Spreadsheets:
//   - spreadsheets_create: Create a new spreadsheet
//   - spreadsheets_get: Get a spreadsheet by ID
//   - spreadsheets_batch_update: Apply structural updates
//   - spreadsheets_get_by_data_filter: Get a spreadsheet filtered by data filters
//
// Values:
//   - values_get, values_update, values_append, values_clear
//   - values_batch_get, values_batch_update, values_batch_clear
//   - values_batch_get_by_data_filter, values_batch_update_by_data_filter,
//     values_batch_clear_by_data_filter
//
// Developer metadata:
//   - developer_metadata_get, developer_metadata_search
//
// Utilities:
//   - sheets_server_info: Server configuration and auth status
//   - sheets_test_connection: Create a probe spreadsheet to verify the connection
//   - sheets_refresh_token: Force a token refresh from Nango
//
// # Read-Only Mode
//
// By default only read tools are registered. Tools that modify
// spreadsheets (including sheets_test_connection, which creates one)
// require read-only mode to be disabled.
package sheets_tools
