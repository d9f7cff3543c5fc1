package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"strlift.dev/pkg/strlift/internal/adapter"
	"strlift.dev/pkg/strlift/internal/controller"
	m "strlift.dev/pkg/strlift/internal/model"
)

var editPosFlag string
var editStartFlag string
var editEndFlag string
var editLinewiseFlag bool

const editLongDescription = `Open the string literal at a position (or an explicit selection) in an
interactive editor with escape sequences rendered literally. Saving
re-escapes the content and writes it back into the file.

` + positionFlagsHelp

// editCmd represents the edit command.
var editCmd = newEditCmd()

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a string literal in an isolated surface",
		Long:  editLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := adapter.OpenFileDocument(args[0])
			if err != nil {
				return err
			}

			info, err := locateTarget(doc, editPosFlag, editStartFlag, editEndFlag, editLinewiseFlag)
			if err != nil {
				return err
			}

			before := documentLines(doc)

			open := engine.Open(doc, info)
			if !open.Success {
				if open.ErrorCode == m.ErrPreconditionFailed {
					_ = ui.ShowSessions(engine.Sessions())
				}

				return failResult(open.Message, open.ErrorCode, open.Suggestions)
			}

			outcome, err := controller.RunEditor(controller.EditorOptions{
				Engine:   engine,
				Surfaces: surfaces,
				Surface:  open.Data.Surface,
				Origin:   doc.ID(),
				Quote:    info.Quote,
				Lines:    open.Data.Lines,
				Output:   cmd.OutOrStdout(),
			})
			if err != nil {
				// The surface must not outlive a crashed editor.
				engine.Cancel(open.Data.Surface)
				return err
			}

			ui.ShowMessage("%s", outcome.Message)

			if outcome.Changed {
				return ui.ShowDiff(doc.ID(), before, documentLines(doc))
			}

			return nil
		},
	}

	configureEditFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func configureEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&editPosFlag, "pos", "p", "", "cursor position LINE:COL for structural detection")
	cmd.Flags().StringVar(&editStartFlag, "start", "", "selection start LINE:COL")
	cmd.Flags().StringVar(&editEndFlag, "end", "", "selection end LINE:COL")
	cmd.Flags().BoolVar(&editLinewiseFlag, linewiseFlagName, false, "treat the selection as whole lines")
}

// locateTarget resolves the target string either structurally (--pos) or
// from an explicit selection (--start/--end). A structural miss with no
// selection available surfaces the engine's remediation suggestions.
func locateTarget(doc adapter.Document, pos, start, end string, linewise bool) (m.StringInfo, error) {
	if start != "" || end != "" {
		if start == "" || end == "" {
			return m.StringInfo{}, fmt.Errorf("--start and --end must be given together")
		}

		sel, err := parseSelection(start, end, linewise)
		if err != nil {
			return m.StringInfo{}, err
		}

		located := engine.LocateSelection(doc, sel)
		if !located.Success {
			return m.StringInfo{}, failResult(located.Message, located.ErrorCode, located.Suggestions)
		}

		return located.Data.Info, nil
	}

	if pos == "" {
		return m.StringInfo{}, fmt.Errorf("either --pos or --start/--end is required")
	}

	line, col, err := parsePosition(pos)
	if err != nil {
		return m.StringInfo{}, err
	}

	located := engine.Locate(doc, m.Position{Line: line, Col: col - 1})
	if !located.Success {
		return m.StringInfo{}, failResult(located.Message, located.ErrorCode, located.Suggestions)
	}

	return located.Data.Info, nil
}
