package cmd

import (
	"github.com/spf13/cobra"

	"strlift.dev/pkg/strlift/internal/adapter"
	"strlift.dev/pkg/strlift/internal/domain"
	m "strlift.dev/pkg/strlift/internal/model"
)

var escapeStartFlag string
var escapeEndFlag string
var escapeLinewiseFlag bool
var escapeQuoteFlag string

const escapeLongDescription = `Escape or unescape a selected span in place, rewriting the file
directly without opening an editing session.

` + positionFlagsHelp

// escapeCmd represents the escape command.
var escapeCmd = newEscapeCmd()

// unescapeCmd represents the unescape command.
var unescapeCmd = newUnescapeCmd()

func newEscapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escape FILE",
		Short: "Escape a selected span in place",
		Long:  escapeLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return rewriteInPlace(args[0], func(doc adapter.Document, sel m.RawSelection) m.Result[domain.InPlaceData] {
				quote, err := parseQuote(escapeQuoteFlag)
				if err != nil {
					return m.Fail[domain.InPlaceData](m.ErrInvalidInput, err.Error())
				}

				return engine.EscapeSelection(doc, sel, quote)
			})
		},
	}

	configureSelectionFlags(cmd)
	cmd.Flags().StringVarP(&escapeQuoteFlag, quoteFlagName, "q", "", "quote character governing escaping (double, single, backtick)")

	return cmd
}

func newUnescapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unescape FILE",
		Short: "Unescape a selected span in place",
		Long:  escapeLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return rewriteInPlace(args[0], func(doc adapter.Document, sel m.RawSelection) m.Result[domain.InPlaceData] {
				return engine.UnescapeSelection(doc, sel)
			})
		},
	}

	configureSelectionFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(escapeCmd)
	rootCmd.AddCommand(unescapeCmd)
}

func configureSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&escapeStartFlag, "start", "", "selection start LINE:COL (required)")
	cmd.Flags().StringVar(&escapeEndFlag, "end", "", "selection end LINE:COL (required)")
	cmd.Flags().BoolVar(&escapeLinewiseFlag, linewiseFlagName, false, "treat the selection as whole lines")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func rewriteInPlace(path string, op func(adapter.Document, m.RawSelection) m.Result[domain.InPlaceData]) error {
	doc, err := adapter.OpenFileDocument(path)
	if err != nil {
		return err
	}

	sel, err := parseSelection(escapeStartFlag, escapeEndFlag, escapeLinewiseFlag)
	if err != nil {
		return err
	}

	before := documentLines(doc)

	res := op(doc, sel)
	if !res.Success {
		return failResult(res.Message, res.ErrorCode, res.Suggestions)
	}

	ui.ShowMessage("%s", res.Message)

	return ui.ShowDiff(path, before, documentLines(doc))
}
