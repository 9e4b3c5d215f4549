package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/bookimport/internal/adapter"
	"github.com/mouse-blink/bookimport/internal/controller"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [dir]",
		Short: "Browse resolved chapters interactively",
		Long: `Load the chapter tree from the given source directory, resolve every
directive and open a terminal browser over the result. Useful to preview
what the host will render without running a full build.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := bookDirArg(args)

			book, err := adapter.LoadBookDir(dir)
			if err != nil {
				return err
			}

			resolutions, err := workflow.Inspect(book)
			if err != nil {
				return err
			}

			counts := make(map[string]int)

			for _, res := range resolutions {
				if !res.Directive.Escaped {
					counts[res.Chapter]++
				}
			}

			if err := workflow.Resolve(book, dir, resolveThreads(parallelFlag)); err != nil {
				return err
			}

			return controller.NewTUI(cmd.OutOrStdout()).Browse(book, counts)
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
