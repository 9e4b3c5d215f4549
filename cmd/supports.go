package cmd

import (
	"github.com/spf13/cobra"
)

// supportsCmd represents the supports command.
var supportsCmd = newSupportsCmd()

func newSupportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Check whether a renderer is supported",
		Long: `Answer the host's renderer negotiation handshake. Import resolution
produces plain markdown, so every renderer is supported and the command
always exits zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(supportsCmd)
}
