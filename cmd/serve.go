package cmd

import (
	"fmt"

	mcpserver "github.com/carelfelix2/scrapper/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	Long:  "Expose the Scrapper API as MCP tools over stdio, so an MCP client can submit tasks and browse products.",
	RunE:  runServe,
}

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Start MCP HTTP server",
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().String("port", "", "HTTP port (default from $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveHTTPCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	_, client := buildClient()

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting Scrapper MCP server on stdio...")
	return mcpserver.Serve(client)
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	_, client := buildClient()

	port := cfg.HTTPPort
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	addr := fmt.Sprintf(":%s", port)
	return mcpserver.ServeHTTP(addr, cfg.APIKey, client)
}
