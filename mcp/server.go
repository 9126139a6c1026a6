package mcp

import (
	"github.com/carelfelix2/scrapper/internal/api"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP stdio server with all tools registered against the
// given API client.
func Serve(client *api.Client) error {
	s := server.NewMCPServer(
		"scrapper",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, client)

	return server.ServeStdio(s)
}
