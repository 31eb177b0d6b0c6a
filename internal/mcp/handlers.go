// ABOUTME: MCP tool handler implementations for the document chat server
// ABOUTME: Thin adapters from tool arguments to the session registry and facade
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docuchat/docuchat/internal/models"
	"github.com/docuchat/docuchat/internal/session"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	sessions session.Store
}

// CreateSession handles the create_session tool.
func (h *Handlers) CreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _, err := h.sessions.Create()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create session: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"session_id": id})
}

// UploadDocument handles the upload_document tool.
func (h *Handlers) UploadDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	id, bot, err := h.sessions.GetOrCreate(request.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve session: %v", err)), nil
	}

	result, err := bot.ProcessDocument(ctx, path, filepath.Base(path))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to process document: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"session_id": id,
		"message":    result.Message,
		"insights":   result.Insights,
	})
}

// AskQuestion handles the ask_question tool.
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	bot, err := h.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %s not found", sessionID)), nil
	}

	resp, err := bot.AskQuestion(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to answer question: %v", err)), nil
	}

	return jsonResult(resp)
}

// DocumentSummary handles the document_summary tool.
func (h *Handlers) DocumentSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	bot, err := h.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %s not found", sessionID)), nil
	}

	summary, err := bot.DocumentSummary(ctx, request.GetString("filename", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to summarize: %v", err)), nil
	}

	return jsonResult(summary)
}

// ListDocuments handles the list_documents tool.
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	bot, err := h.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %s not found", sessionID)), nil
	}

	docs := bot.Documents()
	if docs == nil {
		docs = []models.DocumentRecord{}
	}
	return jsonResult(map[string]interface{}{
		"session_id": sessionID,
		"documents":  docs,
		"count":      len(docs),
	})
}

// DeleteSession handles the delete_session tool.
func (h *Handlers) DeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	if err := h.sessions.Delete(sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %s not found", sessionID)), nil
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// jsonResult marshals v into a text tool result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
