package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/bookimport/internal/adapter"
	m "github.com/mouse-blink/bookimport/internal/model"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify that every import directive resolves",
		Long: `Load the chapter tree from the given source directory and resolve every
directive as a dry run. Nothing is written; the first unresolvable
directive is reported with its chapter, file and tag.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			dir := bookDirArg(args)

			book, err := adapter.LoadBookDir(dir)
			if err != nil {
				return err
			}

			resolutions, err := workflow.Inspect(book)
			if err != nil {
				return err
			}

			live := 0

			for _, res := range resolutions {
				if !res.Directive.Escaped {
					live++
				}
			}

			chapters := 0

			_ = book.WalkChapters(func(*m.Chapter) error {
				chapters++

				return nil
			})

			err = workflow.Resolve(book, dir, resolveThreads(parallelFlag))

			return ui.DisplayCheckResult(chapters, live, err)
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
