package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"strlift.dev/pkg/strlift/internal/adapter"
)

var syncPosFlag string
var syncStartFlag string
var syncEndFlag string
var syncLinewiseFlag bool

const syncLongDescription = `Replace a string literal's content non-interactively: the replacement
literal text is read from stdin, escaped for the literal's quoting, and
written back through a one-shot editing session. Intended for scripts
and editor integrations.

` + positionFlagsHelp

// syncCmd represents the sync command.
var syncCmd = newSyncCmd()

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync FILE",
		Short: "Rewrite a string literal from stdin",
		Long:  syncLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := adapter.OpenFileDocument(args[0])
			if err != nil {
				return err
			}

			info, err := locateTarget(doc, syncPosFlag, syncStartFlag, syncEndFlag, syncLinewiseFlag)
			if err != nil {
				return err
			}

			replacement, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read replacement text: %w", err)
			}

			before := documentLines(doc)

			open := engine.Open(doc, info)
			if !open.Success {
				return failResult(open.Message, open.ErrorCode, open.Suggestions)
			}

			text := strings.TrimSuffix(string(replacement), "\n")
			if err := surfaces.SetLines(open.Data.Surface, strings.Split(text, "\n")); err != nil {
				engine.Cancel(open.Data.Surface)
				return err
			}

			saved := engine.Save(open.Data.Surface)
			if !saved.Success {
				engine.Cancel(open.Data.Surface)
				return failResult(saved.Message, saved.ErrorCode, saved.Suggestions)
			}

			if !saved.Data.Changed {
				ui.ShowMessage("no changes")
				return nil
			}

			ui.ShowMessage("%s", saved.Message)

			return ui.ShowDiff(doc.ID(), before, documentLines(doc))
		},
	}

	cmd.Flags().StringVarP(&syncPosFlag, "pos", "p", "", "cursor position LINE:COL for structural detection")
	cmd.Flags().StringVar(&syncStartFlag, "start", "", "selection start LINE:COL")
	cmd.Flags().StringVar(&syncEndFlag, "end", "", "selection end LINE:COL")
	cmd.Flags().BoolVar(&syncLinewiseFlag, linewiseFlagName, false, "treat the selection as whole lines")

	return cmd
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
