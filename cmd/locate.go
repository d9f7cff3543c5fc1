package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"strlift.dev/pkg/strlift/internal/adapter"
	m "strlift.dev/pkg/strlift/internal/model"
)

var locatePosFlag string
var locateYAMLFlag bool

const locateLongDescription = `Locate string literals structurally. With --pos, report the single
literal enclosing that position; without it, list every literal the
parser finds. Multiple files are scanned concurrently.

` + positionFlagsHelp

// locateCmd represents the locate command.
var locateCmd = newLocateCmd()

func newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate FILE [FILE...]",
		Short: "List string literals and their spans",
		Long:  locateLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if locatePosFlag != "" {
				if len(args) != 1 {
					return fmt.Errorf("--pos applies to exactly one file")
				}

				return locateAt(args[0], locatePosFlag)
			}

			return locateAll(args)
		},
	}

	cmd.Flags().StringVarP(&locatePosFlag, "pos", "p", "", "cursor position LINE:COL")
	cmd.Flags().BoolVar(&locateYAMLFlag, "yaml", false, "emit YAML instead of a table")

	return cmd
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func locateAt(path, pos string) error {
	doc, err := adapter.OpenFileDocument(path)
	if err != nil {
		return err
	}

	line, col, err := parsePosition(pos)
	if err != nil {
		return err
	}

	located := engine.Locate(doc, m.Position{Line: line, Col: col - 1})
	if !located.Success {
		return failResult(located.Message, located.ErrorCode, located.Suggestions)
	}

	return showStrings(path, []m.StringInfo{located.Data.Info})
}

func locateAll(paths []string) error {
	found := make([][]m.StringInfo, len(paths))

	var group errgroup.Group

	for i, path := range paths {
		group.Go(func() error {
			doc, err := adapter.OpenFileDocument(path)
			if err != nil {
				return err
			}

			listed := engine.Strings(doc)
			if !listed.Success {
				return m.NewOpError(listed.ErrorCode, listed.Message, listed.Suggestions...)
			}

			found[i] = listed.Data

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		var op *m.OpError
		if errors.As(err, &op) {
			return failResult(op.Message, op.Kind, op.Suggestions)
		}

		return err
	}

	for i, path := range paths {
		if err := showStrings(path, found[i]); err != nil {
			return err
		}
	}

	return nil
}

func showStrings(path string, infos []m.StringInfo) error {
	if !locateYAMLFlag {
		return ui.ShowStrings(path, infos)
	}

	type located struct {
		Span    string `yaml:"span"`
		Quote   string `yaml:"quote"`
		Source  string `yaml:"source"`
		Content string `yaml:"content"`
	}

	out := struct {
		Path    string    `yaml:"path"`
		Strings []located `yaml:"strings"`
	}{Path: path}

	for _, info := range infos {
		out.Strings = append(out.Strings, located{
			Span:    info.Span.String(),
			Quote:   info.Quote.String(),
			Source:  string(info.Source),
			Content: info.InnerContent,
		})
	}

	encoded, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	ui.ShowMessage("%s", string(encoded))

	return nil
}
