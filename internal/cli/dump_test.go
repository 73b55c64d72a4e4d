package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bunioslaw/UnityProjectParser/internal/store"
	"github.com/Bunioslaw/UnityProjectParser/internal/testutil"
)

// newSampleProject has one good scene referencing Player and one unused
// script.
func newSampleProject(t *testing.T) *testutil.UnityProject {
	p := testutil.NewUnityProject(t)
	p.Scene("A.unity",
		testutil.GameObject("1", "Root"),
		testutil.Transform("2", "1", "4", "6"),
		testutil.GameObject("3", "Left"),
		testutil.Transform("4", "3"),
		testutil.GameObject("5", "Right"),
		testutil.Transform("6", "5"),
		testutil.MonoBehaviour("7", "1", "aaaa"),
		testutil.SceneRoots("8", "2"),
	)
	p.Script("Player", "aaaa")
	p.Script("Tools/Unused", "bbbb")
	return p
}

func addBrokenScene(p *testutil.UnityProject) {
	p.Scene("B.unity",
		testutil.GameObject("1", "Lonely"),
		testutil.Transform("2", "1", "999"),
		testutil.SceneRoots("3", "2"),
	)
}

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type dumpResponse struct {
	Status string      `json:"status"`
	Data   DumpSummary `json:"data"`
	Error  *CLIError   `json:"error"`
}

func TestDump_Success(t *testing.T) {
	p := newSampleProject(t)
	out := filepath.Join(t.TempDir(), "out")

	stdout, _, err := executeRoot(t, p.Root, out)
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, GetExitCode(err))

	assert.Contains(t, stdout, "✓ A.unity")
	assert.Contains(t, stdout, "(3 line(s))")
	assert.Contains(t, stdout, "1 of 2 script(s) unused")
	assert.Contains(t, stdout, "bbbb  Assets/Scripts/Tools/Unused.cs")

	dump, err := os.ReadFile(filepath.Join(out, "A.unity.dump"))
	require.NoError(t, err)
	assert.Equal(t, "Root\n--Left\n--Right\n", string(dump))

	csv, err := os.ReadFile(filepath.Join(out, "UnusedScripts.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Relative Path,GUID\nAssets/Scripts/Tools/Unused.cs,bbbb\n", string(csv))
}

func TestDump_PartialJSON(t *testing.T) {
	p := newSampleProject(t)
	addBrokenScene(p)
	out := t.TempDir()

	stdout, _, err := executeRoot(t, p.Root, out, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp dumpResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, StatusPartial, resp.Status)
	require.Len(t, resp.Data.Scenes, 2)

	good, broken := resp.Data.Scenes[0], resp.Data.Scenes[1]
	assert.Nil(t, good.Error)
	assert.Equal(t, 3, good.Lines)

	require.NotNil(t, broken.Error)
	assert.Equal(t, ErrCodeUnresolved, broken.Error.Code)
	assert.Contains(t, broken.Error.Message, "999")
	assert.Empty(t, broken.Dump)
	assert.NoFileExists(t, filepath.Join(out, "B.unity.dump"))

	require.Len(t, resp.Data.Unused, 1)
	assert.Equal(t, "Assets/Scripts/Tools/Unused.cs", resp.Data.Unused[0].RelativePath)
}

func TestDump_PartialText(t *testing.T) {
	p := newSampleProject(t)
	addBrokenScene(p)

	stdout, _, err := executeRoot(t, p.Root, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 scene(s) and 0 script(s) failed")
	assert.Contains(t, stdout, "✗ B.unity\n  E204:")
}

func TestDump_ScriptFailure(t *testing.T) {
	p := newSampleProject(t)
	meta := filepath.Join(p.Root, "Assets", "Scripts", "NoGuid.cs.meta")
	require.NoError(t, os.WriteFile(meta, []byte("fileFormatVersion: 2\n"), 0o644))

	stdout, _, err := executeRoot(t, p.Root, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "NoGuid.cs.meta\n  E201:")
}

func TestDump_MissingScenesDir(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := executeRoot(t, root, t.TempDir(), "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp dumpResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeScan, resp.Error.Code)
}

func TestDump_InvalidConfig(t *testing.T) {
	p := newSampleProject(t)
	cfgPath := filepath.Join(t.TempDir(), "layout.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_depth: 0\n"), 0o644))

	stdout, _, err := executeRoot(t, p.Root, t.TempDir(), "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E002]")
}

func TestDump_CustomLayout(t *testing.T) {
	p := testutil.NewUnityProject(t)
	levels := filepath.Join(p.Root, "Levels")
	require.NoError(t, os.MkdirAll(levels, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(levels, "Only.scene"),
		[]byte(testutil.GameObject("1", "Solo")+testutil.Transform("2", "1")+testutil.SceneRoots("3", "2")), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "layout.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte("scenes_dir: \"Levels\"\nscene_ext: \".scene\"\n"), 0o644))

	out := t.TempDir()
	_, _, err := executeRoot(t, p.Root, out, "--config", cfgPath)
	require.NoError(t, err)

	dump, err := os.ReadFile(filepath.Join(out, "Only.scene.dump"))
	require.NoError(t, err)
	assert.Equal(t, "Solo\n", string(dump))
}

func TestDump_VerboseLogsToStderr(t *testing.T) {
	p := newSampleProject(t)

	stdout, stderr, err := executeRoot(t, p.Root, t.TempDir(), "--verbose", "--format", "json")
	require.NoError(t, err)

	var resp dumpResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout stays valid JSON")
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "Layout: scenes Assets/Scenes/*.unity")
}

func TestDump_RecordsRun(t *testing.T) {
	p := newSampleProject(t)
	addBrokenScene(p)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	clock := testutil.NewStepClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), time.Minute)
	opts := &DumpOptions{
		RootOptions:  &RootOptions{Format: "text"},
		Database:     dbPath,
		StoreOptions: []store.Option{store.WithClock(clock.Now)},
	}
	cmd := &cobra.Command{}
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})

	err := runDump(opts, p.Root, t.TempDir(), cmd)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout.String(), "Recorded run ")
	assert.Equal(t, int64(1), clock.Calls())

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Scenes)
	assert.Equal(t, 1, runs[0].FailedScenes)
	assert.Equal(t, 2, runs[0].Scripts)
	assert.Equal(t, 1, runs[0].Unused)
	assert.Equal(t, "2026-05-01T12:00:00Z", runs[0].StartedAt.Format(time.RFC3339))

	scenes, err := st.SceneOutcomes(context.Background(), runs[0].ID)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "999", string(scenes[1].ErrorID))
}

func TestDump_DatabaseError(t *testing.T) {
	p := newSampleProject(t)
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "history.db")

	stdout, _, err := executeRoot(t, p.Root, t.TempDir(), "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E003]")
}
