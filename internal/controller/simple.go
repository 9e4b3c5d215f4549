package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayDirectives prints one table row per directive occurrence.
func (s *SimpleUI) DisplayDirectives(resolutions []m.Resolution) error {
	if len(resolutions) == 0 {
		s.printf("no import directives found\n")

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Chapter", "File", "Tag", "Escaped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	escaped := 0

	for _, res := range resolutions {
		escapedMark := ""
		if res.Directive.Escaped {
			escapedMark = "yes"
			escaped++
		}

		table.Append([]string{
			res.Chapter,
			string(res.Directive.File),
			res.Directive.Tag,
			escapedMark,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(resolutions)),
		"",
		"",
		fmt.Sprintf("%d", escaped),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayCheckResult prints the dry run outcome or error.
func (s *SimpleUI) DisplayCheckResult(chapters int, directives int, err error) error {
	if err != nil {
		s.printf("check failed: %v\n", err)

		return err
	}

	s.printf("ok: %d directive(s) across %d chapter(s) resolve cleanly\n", directives, chapters)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
