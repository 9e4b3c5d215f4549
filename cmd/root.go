// Package cmd provides the root command and CLI setup for bookimport.
package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/bookimport/internal/adapter"
	"github.com/mouse-blink/bookimport/internal/config"
	"github.com/mouse-blink/bookimport/internal/controller"
	"github.com/mouse-blink/bookimport/internal/domain"
)

var fsAdapter adapter.BookFSAdapter
var scanner *domain.Scanner
var workflow domain.Workflow
var ui controller.UI

func init() {
	if err := config.Init(); err != nil {
		slog.Warn("failed to load configuration", "error", err)
	}

	fsAdapter = adapter.NewLocalBookFSAdapter()
	scanner = domain.NewScanner(config.GetEscapeChar())
	workflow = domain.NewWorkflow(fsAdapter, scanner)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

var parallelFlag int

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookimport",
		Short: "Resolve import directives in a book",
		Long: `Bookimport replaces {{#import <file>@<tag>}} directives in chapter
bodies with the region between the "@import start <tag>" and
"@import end <tag>" marker lines of the referenced file, so documentation
can quote live sources by stable tag name instead of brittle line ranges.

Without a subcommand it speaks the preprocessor protocol: it reads a
[context, book] JSON pair from stdin, rewrites every chapter and writes
the book JSON back to stdout. Diagnostics go to stderr only.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreprocess(cmd.InOrStdin(), cmd.OutOrStdout(), parallelFlag)
		},
	}
	cmd.PersistentFlags().IntVarP(&parallelFlag, "parallel", "p", 0, "number of parallel section workers (0 uses the configured default)")

	return cmd
}

// runPreprocess drives one full preprocessor exchange over the given
// streams.
func runPreprocess(in io.Reader, out io.Writer, threads int) error {
	ctx, book, err := adapter.ParseInput(in)
	if err != nil {
		return err
	}

	slog.Debug("preprocessing book",
		"root", ctx.Root,
		"renderer", ctx.Renderer,
		"host_version", ctx.MdbookVersion,
	)

	if err := workflow.Resolve(book, ctx.SrcDir(), resolveThreads(threads)); err != nil {
		return err
	}

	return adapter.WriteBook(out, book)
}

// resolveThreads folds the flag and the configured default into a worker
// count.
func resolveThreads(flag int) int {
	if flag > 0 {
		return flag
	}

	if configured := config.GetParallel(); configured > 0 {
		return configured
	}

	return 1
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	setupLogging(os.Stderr)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setupLogging routes structured logs to stderr so preprocessor output on
// stdout stays machine readable.
func setupLogging(w io.Writer) {
	var level slog.Level

	switch strings.ToLower(config.GetLogLevel()) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
