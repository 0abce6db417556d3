package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gsheets-mcp application
var rootCmd = &cobra.Command{
	Use:   "gsheets-mcp",
	Short: "MCP server for the Google Sheets API, authenticated via Nango",
	Long: `gsheets-mcp exposes the Google Sheets API v4 as MCP (Model Context
Protocol) tools for AI assistants. OAuth credentials are brokered by Nango:
the server fetches short-lived Google access tokens from a Nango connection
and refreshes them transparently.

Requires the following environment variables:
  NANGO_CONNECTION_ID   Nango connection to fetch credentials from
  NANGO_INTEGRATION_ID  Nango provider config key (integration)
  NANGO_BASE_URL        Nango API base URL (e.g. https://api.nango.dev)
  NANGO_SECRET_KEY      Nango secret key`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gsheets-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
