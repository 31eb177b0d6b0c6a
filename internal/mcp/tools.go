// ABOUTME: MCP tool definitions and registration for the document chat server
// ABOUTME: Defines JSON schemas for the session, upload, chat, and summary tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docuchat/docuchat/internal/session"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, sessions session.Store) *Handlers {
	handlers := &Handlers{sessions: sessions}

	server.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new document chat session. Returns the session id to use with the other tools.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CreateSession)

	server.AddTool(mcp.Tool{
		Name:        "upload_document",
		Description: "Load a document file (.txt, .pdf, .docx) into a session's searchable index. Returns processing insights and suggested questions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to index the document into. A new session is created when omitted.",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Filesystem path of the document to upload",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.UploadDocument)

	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about a session's uploaded documents. Returns a grounded answer with cited sources and contextual insights.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session whose documents to query",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the documents",
				},
			},
			Required: []string{"session_id", "question"},
		},
	}, handlers.AskQuestion)

	server.AddTool(mcp.Tool{
		Name:        "document_summary",
		Description: "Summarize one uploaded document, or all of the session's documents when no filename is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session whose documents to summarize",
				},
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Limit the summary to this uploaded filename",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.DocumentSummary)

	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents uploaded to a session with their chunk counts and upload times.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to list documents for",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.ListDocuments)

	server.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session and release its document index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.DeleteSession)

	return handlers
}
