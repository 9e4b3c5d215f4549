package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/bookimport/internal/adapter"
	m "github.com/mouse-blink/bookimport/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List import directives found in a book directory",
		Long: `Scan every chapter under the given source directory and print the
directives found, escaped occurrences included. No referenced file is
read and nothing is rewritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			book, err := adapter.LoadBookDir(bookDirArg(args))
			if err != nil {
				return err
			}

			resolutions, err := workflow.Inspect(book)
			if err != nil {
				return err
			}

			return ui.DisplayDirectives(resolutions)
		},
	}
}

// bookDirArg returns the directory argument, defaulting to the current
// directory.
func bookDirArg(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return "."
}

func init() {
	rootCmd.AddCommand(listCmd)
}
