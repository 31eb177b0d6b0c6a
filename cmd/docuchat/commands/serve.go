// ABOUTME: Serve command starts the HTTP API
// ABOUTME: Builds the config, OpenAI client, session registry, and fiber server
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat/internal/chatbot"
	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/llm"
	"github.com/docuchat/docuchat/internal/server"
	"github.com/docuchat/docuchat/internal/session"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Serves the document chat API: session lifecycle, document uploads,
question answering, summaries, and insights.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
		Example: `  # Start on the configured port (PORT env var, default 8080)
  docuchat serve

  # Start on an explicit port
  docuchat serve --port 9000`,
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides PORT)")

	return cmd
}

func runServe(port int) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if port != 0 {
		cfg.Port = port
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	sessions := session.NewMemoryStore(func(id string) *chatbot.Chatbot {
		return chatbot.New(id, cfg, client)
	}, cfg.MaxSessions)

	srv := server.New(cfg, sessions)

	if !quiet {
		log.Printf("Docuchat server starting on port %d", cfg.Port)
	}
	return srv.Listen()
}
