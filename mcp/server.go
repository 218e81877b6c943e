package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mrevanzak/memovox/services"
)

// NewMCPServer creates a new MCP server exposing the voice-memo library
func NewMCPServer(service services.Service, name string, version string) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
	)

	t := &toolset{service: service}

	listRecordingsTool := mcp.NewTool("list_recordings",
		mcp.WithDescription("List a user's voice memos, newest first"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID of the user whose recordings to list"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of recordings to return (default 20)"),
		),
	)

	searchRecordingsTool := mcp.NewTool("search_recordings",
		mcp.WithDescription("Search voice memos by transcript or notes content"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against transcripts and notes"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of recordings to return (default 20)"),
		),
	)

	getRecordingTool := mcp.NewTool("get_recording",
		mcp.WithDescription("Retrieve one voice memo by ID, including its transcript if available"),
		mcp.WithString("recording_id",
			mcp.Required(),
			mcp.Description("ID of the recording to retrieve"),
		),
	)

	previewImportTool := mcp.NewTool("preview_whatsapp_import",
		mcp.WithDescription("Inspect a WhatsApp chat-export ZIP without importing it: sender names, message counts and parse problems"),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Base64-encoded ZIP archive of the exported chat"),
		),
	)

	s.AddTool(listRecordingsTool, t.listRecordingsHandler)
	s.AddTool(searchRecordingsTool, t.searchRecordingsHandler)
	s.AddTool(getRecordingTool, t.getRecordingHandler)
	s.AddTool(previewImportTool, t.previewImportHandler)

	return s
}

// StartMCPServer starts the MCP server
func StartMCPServer(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
