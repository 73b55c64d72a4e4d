package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bunioslaw/UnityProjectParser/internal/cli"
	"github.com/Bunioslaw/UnityProjectParser/internal/testutil"
)

func TestRun_Success(t *testing.T) {
	p := testutil.NewUnityProject(t)
	p.Scene("Main.unity",
		testutil.GameObject("1", "Camera"),
		testutil.Transform("2", "1"),
		testutil.SceneRoots("3", "2"),
	)
	out := t.TempDir()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{p.Root, out})

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Empty(t, stderr.String())

	dump, err := os.ReadFile(filepath.Join(out, "Main.unity.dump"))
	require.NoError(t, err)
	assert.Equal(t, "Camera\n", string(dump))
}

func TestRun_UsageError(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"only-one-arg"})

	assert.Equal(t, cli.ExitCommandError, code)
	assert.Contains(t, stderr.String(), "accepts 2 arg(s)")
}

func TestRun_CommandErrorNotRepeated(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{t.TempDir(), t.TempDir()})

	assert.Equal(t, cli.ExitCommandError, code)
	assert.Contains(t, stdout.String(), "Error [E302]")
	assert.NotContains(t, stderr.String(), "unityparser:")
}
