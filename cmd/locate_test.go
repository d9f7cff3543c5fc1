package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const locateFixture = `package tmp

var greeting = "a\tb"

var other = "second"
`

func TestLocateCmd_ListsAllStrings(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	path := writeTempFile(t, "fixture.go", locateFixture)

	err := execute(t, cmd, "locate", path)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `a\tb`)
	assert.Contains(t, out.String(), "second")
	assert.Contains(t, out.String(), "2 string(s)")
}

func TestLocateCmd_AtPosition(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	path := writeTempFile(t, "fixture.go", locateFixture)

	err := execute(t, cmd, "locate", path, "--pos", "3:17")
	require.NoError(t, err)

	assert.Contains(t, out.String(), `a\tb`)
	assert.NotContains(t, out.String(), "second")
}

func TestLocateCmd_YAML(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	path := writeTempFile(t, "fixture.go", locateFixture)

	err := execute(t, cmd, "locate", path, "--yaml")
	require.NoError(t, err)

	var decoded struct {
		Path    string `yaml:"path"`
		Strings []struct {
			Span    string `yaml:"span"`
			Quote   string `yaml:"quote"`
			Content string `yaml:"content"`
		} `yaml:"strings"`
	}

	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded.Strings, 2)

	assert.Equal(t, path, decoded.Path)
	assert.Equal(t, `a\tb`, decoded.Strings[0].Content)
	assert.Equal(t, `"`, decoded.Strings[0].Quote)
}

func TestLocateCmd_MultipleFiles(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	first := writeTempFile(t, "first.go", "package a\n\nvar x = \"alpha\"\n")
	second := writeTempFile(t, "second.go", "package b\n\nvar y = \"beta\"\n")

	err := execute(t, cmd, "locate", first, second)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "alpha")
	assert.Contains(t, out.String(), "beta")
}

func TestLocateCmd_UnknownContentType(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	path := writeTempFile(t, "notes.txt", "just some \"text\"\n")

	err := execute(t, cmd, "locate", path)
	require.Error(t, err)

	assert.Contains(t, out.String(), "error (provider_unavailable)")
	assert.Contains(t, out.String(), "hint:")
}

func TestLocateCmd_PosWithMultipleFiles(t *testing.T) {
	cmd, _ := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	first := writeTempFile(t, "first.go", "package a\n")
	second := writeTempFile(t, "second.go", "package b\n")

	err := execute(t, cmd, "locate", first, second, "--pos", "1:1")
	require.Error(t, err)
}

func TestLocateCmd_MissingFile(t *testing.T) {
	cmd, _ := newTestRoot(t)
	cmd.AddCommand(newLocateCmd())

	err := execute(t, cmd, "locate", "does-not-exist.go")
	require.Error(t, err)
}
