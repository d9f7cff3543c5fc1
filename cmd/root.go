// Package cmd provides the root command and CLI setup for strlift.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"strlift.dev/pkg/strlift/internal/adapter"
	"strlift.dev/pkg/strlift/internal/controller"
	"strlift.dev/pkg/strlift/internal/domain"
	m "strlift.dev/pkg/strlift/internal/model"
)

var surfaces *adapter.MemSurfaceManager
var providers *adapter.ProviderRegistry
var engine domain.Engine
var ui controller.UI

// verboseFlag raises logging to debug level.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	surfaces = adapter.NewMemSurfaceManager()
	providers = adapter.DefaultProviderRegistry(viper.GetBool(preferTreeSitterKey))
	engine = domain.NewEngine(providers, surfaces)
	ui = controller.NewSimpleUI(rootCmd)
}

const positionFlagsHelp = `Positions use LINE:COL where LINE is 1-based and COL is a 1-based
column within the line. Selection ends are inclusive, the way editors
report them.`

const rootLongDescription = `Strlift lifts a quoted string literal out of its surrounding source
file into an isolated editing surface where escape sequences appear as
their literal characters, lets you edit the content naturally, and
writes it back re-escaped without touching the rest of the file.

` + positionFlagsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strlift",
		Short: "Extract, edit and re-embed escaped string literals",
		Long:  rootLongDescription,
		// Failures are already rendered through the UI with their error
		// code and suggestions.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parsePosition parses a LINE:COL flag value.
func parsePosition(value string) (int, int, error) {
	var line, col int

	if _, err := fmt.Sscanf(value, "%d:%d", &line, &col); err != nil {
		return 0, 0, fmt.Errorf("invalid position %q, want LINE:COL: %w", value, err)
	}

	return line, col, nil
}

// parseSelection builds a raw selection from --start/--end flag values.
func parseSelection(start, end string, linewise bool) (m.RawSelection, error) {
	startLine, startCol, err := parsePosition(start)
	if err != nil {
		return m.RawSelection{}, err
	}

	endLine, endCol, err := parsePosition(end)
	if err != nil {
		return m.RawSelection{}, err
	}

	mode := m.SelectionChar
	if linewise {
		mode = m.SelectionLine
	}

	return m.RawSelection{
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
		Mode:      mode,
	}, nil
}

// parseQuote maps a --quote flag value onto a quote character. An empty
// value defers to the configured default.
func parseQuote(value string) (m.Quote, error) {
	if value == "" {
		value = viper.GetString(defaultQuoteKey)
	}

	switch value {
	case `"`, "double":
		return m.QuoteDouble, nil
	case `'`, "single":
		return m.QuoteSingle, nil
	case "`", "back", "backtick":
		return m.QuoteBack, nil
	case "none":
		return m.QuoteNone, nil
	}

	return m.QuoteNone, fmt.Errorf("unsupported quote %q", value)
}

// documentLines snapshots a document's content for diff rendering.
func documentLines(doc adapter.Document) []string {
	lines := make([]string, 0, doc.LineCount())

	for i := 1; i <= doc.LineCount(); i++ {
		line, err := doc.Line(i)
		if err != nil {
			break
		}

		lines = append(lines, line)
	}

	return lines
}

// failResult surfaces a failed engine result to both the UI and cobra.
func failResult(message string, code m.ErrorKind, suggestions []string) error {
	ui.ShowFailure(message, code, suggestions)

	return fmt.Errorf("%s", message)
}
