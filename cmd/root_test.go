package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strlift.dev/pkg/strlift/internal/adapter"
	"strlift.dev/pkg/strlift/internal/controller"
	"strlift.dev/pkg/strlift/internal/domain"
	m "strlift.dev/pkg/strlift/internal/model"
)

// newTestRoot rebuilds the shared dependencies around a fresh root command
// so each test executes against its own engine and captures its own output.
func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := baseRootCmd()
	configureRootFlags(cmd)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)

	originalSurfaces, originalEngine, originalUI := surfaces, engine, ui
	t.Cleanup(func() {
		surfaces, engine, ui = originalSurfaces, originalEngine, originalUI
	})

	surfaces = adapter.NewMemSurfaceManager()
	engine = domain.NewEngine(adapter.DefaultProviderRegistry(false), surfaces)
	ui = controller.NewSimpleUI(cmd)

	return cmd, out
}

// execute runs cmd with args, routing the log file into a temp dir so tests
// leave no residue in the working directory.
func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()

	cmd.SetArgs(append([]string{"--log-file", filepath.Join(t.TempDir(), "test.log")}, args...))

	return cmd.Execute()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantLine int
		wantCol  int
		wantErr  bool
	}{
		{name: "simple", value: "3:14", wantLine: 3, wantCol: 14},
		{name: "column zero", value: "1:0", wantLine: 1, wantCol: 0},
		{name: "missing colon", value: "12", wantErr: true},
		{name: "not numeric", value: "a:b", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col, err := parsePosition(tt.value)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestParseSelection(t *testing.T) {
	t.Run("character-wise", func(t *testing.T) {
		sel, err := parseSelection("2:5", "4:1", false)
		require.NoError(t, err)

		assert.Equal(t, m.RawSelection{
			StartLine: 2, StartCol: 5, EndLine: 4, EndCol: 1, Mode: m.SelectionChar,
		}, sel)
	})

	t.Run("line-wise", func(t *testing.T) {
		sel, err := parseSelection("2:1", "4:1", true)
		require.NoError(t, err)
		assert.Equal(t, m.SelectionLine, sel.Mode)
	})

	t.Run("bad endpoint", func(t *testing.T) {
		_, err := parseSelection("2:1", "oops", false)
		require.Error(t, err)
	})
}

func TestParseQuote(t *testing.T) {
	tests := []struct {
		value   string
		want    m.Quote
		wantErr bool
	}{
		{value: `"`, want: m.QuoteDouble},
		{value: "double", want: m.QuoteDouble},
		{value: "'", want: m.QuoteSingle},
		{value: "single", want: m.QuoteSingle},
		{value: "`", want: m.QuoteBack},
		{value: "backtick", want: m.QuoteBack},
		{value: "none", want: m.QuoteNone},
		{value: "", want: m.QuoteDouble}, // configured default
		{value: "angle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			quote, err := parseQuote(tt.value)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, quote)
		})
	}
}

func TestDocumentLines(t *testing.T) {
	doc := adapter.NewMemDocument("mem://snap", []string{"one", "two"})

	assert.Equal(t, []string{"one", "two"}, documentLines(doc))
}
