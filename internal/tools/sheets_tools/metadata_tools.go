package sheets_tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/teemow/gsheets-mcp/internal/server"
)

// registerMetadataTools registers the developerMetadata resource tools.
// Both are read operations.
func registerMetadataTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getTool := mcp.NewTool("developer_metadata_get",
		mcp.WithDescription("Returns the developer metadata with the specified ID"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to retrieve metadata from"),
		),
		mcp.WithNumber("metadata_id",
			mcp.Required(),
			mcp.Description("The ID of the developer metadata to retrieve"),
		),
	)
	addOperationTool(s, sc, getTool, "developer_metadata_get", func() any { return &sheetsv4.DeveloperMetadata{} })

	searchTool := mcp.NewTool("developer_metadata_search",
		mcp.WithDescription("Returns all developer metadata matching the specified data filters"),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet to search"),
		),
		mcp.WithArray("data_filters",
			mcp.Required(),
			mcp.Description("DataFilter objects selecting the metadata to return"),
		),
	)
	addOperationTool(s, sc, searchTool, "developer_metadata_search", func() any { return &sheetsv4.SearchDeveloperMetadataResponse{} })

	return nil
}
