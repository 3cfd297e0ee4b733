package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultExecutorRunsViaPathLookup(t *testing.T) {
	requireTool(t, "cat")
	lookup := func(name string) (string, bool) {
		if name == "cat" {
			return requireTool(t, "cat"), true
		}
		return "", false
	}
	e := &DefaultExecutor{LookupFunc: lookup}

	var out bytes.Buffer
	code, err := e.Execute(context.Background(), "cat", nil, IOBindings{
		Stdin:  strings.NewReader("hello\n"),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", out.String())
}

func TestDefaultExecutorReportsExitCode(t *testing.T) {
	path := requireTool(t, "false")
	lookup := func(name string) (string, bool) { return path, true }
	e := &DefaultExecutor{LookupFunc: lookup}

	code, err := e.Execute(context.Background(), "false", nil, IOBindings{})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestDefaultExecutorUnknownCommandIsNotFound(t *testing.T) {
	e := &DefaultExecutor{LookupFunc: func(string) (string, bool) { return "", false }}

	_, err := e.Execute(context.Background(), "nope", nil, IOBindings{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCommandPathBareNameUsesLookup(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == "tool" {
			return "/usr/bin/tool", true
		}
		return "", false
	}
	path, err := resolveCommandPath("tool", lookup)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/tool", path)
}

func TestResolveCommandPathBareNameNotFound(t *testing.T) {
	_, err := resolveCommandPath("missing", func(string) (string, bool) { return "", false })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCommandPathWithSlashBypassesLookup(t *testing.T) {
	exe := requireTool(t, "cat")
	path, err := resolveCommandPath(exe, func(string) (string, bool) {
		t.Fatal("lookup should not be consulted for a path containing '/'")
		return "", false
	})
	require.NoError(t, err)
	assert.Equal(t, exe, path)
}

func TestResolveCommandPathWithSlashMissingFile(t *testing.T) {
	_, err := resolveCommandPath("/no/such/path/tool", func(string) (string, bool) { return "", false })
	var shellErr *ShellError
	require.True(t, errors.As(err, &shellErr))
	assert.ErrorIs(t, err, ErrNotFound)
}
