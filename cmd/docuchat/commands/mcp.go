// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to chat with documents via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat/internal/chatbot"
	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/llm"
	"github.com/docuchat/docuchat/internal/mcp"
	"github.com/docuchat/docuchat/internal/session"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Docuchat as an MCP (Model Context Protocol) server over stdio,
exposing document upload, question answering, and summaries as tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an agent host)
  docuchat mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docuchat": {
  #       "command": "docuchat",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server.
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	sessions := session.NewMemoryStore(func(id string) *chatbot.Chatbot {
		return chatbot.New(id, cfg, client)
	}, cfg.MaxSessions)

	server := mcpserver.NewMCPServer(
		"Docuchat",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, sessions)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Docuchat MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
