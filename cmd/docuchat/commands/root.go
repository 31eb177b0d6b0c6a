// ABOUTME: Root command for the docuchat CLI with global flags
// ABOUTME: Wires the serve, mcp, and version subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docuchat",
		Short: "Chat with your documents",
		Long: `Docuchat - session-scoped document question answering

Upload .txt, .pdf, or .docx files into an ephemeral session, then ask
questions answered from the document content with cited sources.

Each session keeps its own on-disk vector index and is removed when the
session is deleted.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
