package cli

import (
	"fmt"
	"os"

	"github.com/meetrec/recording-bot/internal/version"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recording-bot",
		Short: "Meeting recording bot",
		Long: `Recording bot answers chat requests for meeting recordings: it resolves a
meeting number against the Webex API, applies access-control rules, and
replies with the temporary recording download links.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.GetShortVersion(),
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
