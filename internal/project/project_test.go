package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bunioslaw/UnityProjectParser/internal/config"
	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/scene"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

var sampleProject = filepath.Join("testdata", "SampleProject")

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRun_SampleProject(t *testing.T) {
	out := t.TempDir()

	result, err := Run(Options{ProjectRoot: sampleProject, OutputDir: out})
	require.NoError(t, err)

	// scenes are processed in sorted order; Archive/ is not searched
	require.Len(t, result.Scenes, 3)
	assert.Equal(t, "Broken.unity", filepath.Base(result.Scenes[0].Path))
	assert.Equal(t, "Corrupt.unity", filepath.Base(result.Scenes[1].Path))
	assert.Equal(t, "Main.unity", filepath.Base(result.Scenes[2].Path))

	main := result.Scenes[2]
	require.False(t, main.Failed())
	assert.Equal(t, 4, main.Lines)
	assert.Equal(t, filepath.Join(out, "Main.unity.dump"), main.DumpPath)

	dump, err := os.ReadFile(main.DumpPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "Main.unity.dump", dump)

	csv, err := os.ReadFile(filepath.Join(out, "UnusedScripts.csv"))
	require.NoError(t, err)
	newGoldie(t).Assert(t, "UnusedScripts.csv", csv)

	assert.Equal(t, 2, result.FailedScenes())
	assert.True(t, result.Partial())
}

func TestRun_FailedScenesAreSkipped(t *testing.T) {
	out := t.TempDir()

	result, err := Run(Options{ProjectRoot: sampleProject, OutputDir: out})
	require.NoError(t, err)

	broken := result.Scenes[0]
	require.True(t, broken.Failed())
	var ue *scene.UnresolvedReferenceError
	require.True(t, errors.As(broken.Err, &ue))
	assert.Equal(t, ir.Identifier("999"), broken.ErrorID)
	assert.Contains(t, broken.Error, "999")
	assert.Empty(t, broken.DumpPath)
	assert.NoFileExists(t, filepath.Join(out, "Broken.unity.dump"))

	corrupt := result.Scenes[1]
	var me *scene.MalformedRecordError
	require.True(t, errors.As(corrupt.Err, &me))
	assert.Equal(t, ir.Identifier("100"), corrupt.ErrorID)
	assert.NoFileExists(t, filepath.Join(out, "Corrupt.unity.dump"))
}

func TestRun_ScriptReferencesAcrossScenes(t *testing.T) {
	result, err := Run(Options{ProjectRoot: sampleProject, OutputDir: t.TempDir()})
	require.NoError(t, err)

	// Main.unity references the player script
	assert.True(t, result.Referenced.Contains("9a1e0000000000000000000000000000"))
	// Broken.unity parsed but failed to render; its reference still counts
	assert.True(t, result.Referenced.Contains("e4e40000000000000000000000000000"))
	// Corrupt.unity failed to parse; its reference does not count
	assert.False(t, result.Referenced.Contains("b0550000000000000000000000000000"))

	var unused []string
	for _, a := range result.Unused {
		unused = append(unused, a.RelativePath)
	}
	assert.Equal(t, []string{"Assets/Scripts/Enemies/Boss.cs", "Assets/Scripts/Unused/Legacy.cs"}, unused)

	// each unused asset appears exactly once
	seen := make(map[ir.Identifier]int)
	for _, a := range result.Unused {
		seen[a.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "asset %s reported %d times", id, n)
	}
}

func TestRun_ScriptFailures(t *testing.T) {
	result, err := Run(Options{ProjectRoot: sampleProject, OutputDir: t.TempDir()})
	require.NoError(t, err)

	require.Len(t, result.ScriptFailures, 1)
	assert.Equal(t, "Broken.cs.meta", filepath.Base(result.ScriptFailures[0].Path))
	assert.NotEmpty(t, result.ScriptFailures[0].Error)
	assert.Len(t, result.Scripts, 4)
}

func TestRun_Idempotent(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	_, err := Run(Options{ProjectRoot: sampleProject, OutputDir: first})
	require.NoError(t, err)
	_, err = Run(Options{ProjectRoot: sampleProject, OutputDir: second})
	require.NoError(t, err)

	for _, name := range []string{"Main.unity.dump", "UnusedScripts.csv"} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestRun_CreatesOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")

	_, err := Run(Options{ProjectRoot: sampleProject, OutputDir: out})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "UnusedScripts.csv"))
}

func TestRun_MissingScenesDirAborts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Assets", "Scripts"), 0o755))

	_, err := Run(Options{ProjectRoot: root, OutputDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, IsIOError(err))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "scan", ioErr.Op)
}

func TestRun_UnwritableOutputAborts(t *testing.T) {
	// a regular file where the output directory should be
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(out, nil, 0o644))

	_, err := Run(Options{ProjectRoot: sampleProject, OutputDir: out})
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestRun_CustomLayout(t *testing.T) {
	root := t.TempDir()
	levels := filepath.Join(root, "Game", "Levels")
	code := filepath.Join(root, "Game", "Code")
	require.NoError(t, os.MkdirAll(levels, 0o755))
	require.NoError(t, os.MkdirAll(code, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(levels, "One.unity"), []byte(`--- !u!1 &1
GameObject:
  m_Name: Solo
--- !u!224 &2
RectTransform:
  m_GameObject: {fileID: 1}
  m_Children: []
--- !u!1660057539 &3
SceneRoots:
  m_Roots:
  - {fileID: 2}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(code, "Tool.cs.meta"), []byte("fileFormatVersion: 2\nguid: 77\n"), 0o644))

	cfg := config.Default()
	cfg.ScenesDir = "Game/Levels"
	cfg.ScriptsDir = "Game/Code"
	cfg.TransformKinds = []string{"Transform"}

	out := t.TempDir()
	result, err := Run(Options{ProjectRoot: root, OutputDir: out, Config: cfg})
	require.NoError(t, err)

	// RectTransform is not transform-like under this config, so root 2 is unresolved
	require.Len(t, result.Scenes, 1)
	assert.True(t, result.Scenes[0].Failed())
	assert.Equal(t, []ir.ScriptAsset{{RelativePath: "Game/Code/Tool.cs", ID: "77"}}, result.Unused)
}

func TestRun_SyntaxErrorIsSceneScoped(t *testing.T) {
	root := t.TempDir()
	scenes := filepath.Join(root, "Assets", "Scenes")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Assets", "Scripts"), 0o755))
	require.NoError(t, os.MkdirAll(scenes, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scenes, "Bad.unity"), []byte("--- !u!1 &1\nGameObject: {m_Name: [\n"), 0o644))

	result, err := Run(Options{ProjectRoot: root, OutputDir: t.TempDir()})
	require.NoError(t, err)
	require.Len(t, result.Scenes, 1)

	var de *yamldoc.DecodeError
	assert.True(t, errors.As(result.Scenes[0].Err, &de))
	assert.False(t, IsIOError(result.Scenes[0].Err))
	assert.True(t, result.Partial())
}
