package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// UnityProject builds a throwaway Unity project under t.TempDir().
type UnityProject struct {
	t    *testing.T
	Root string
}

// NewUnityProject creates an empty project with Assets/Scenes and
// Assets/Scripts.
func NewUnityProject(t *testing.T) *UnityProject {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"Assets/Scenes", "Assets/Scripts"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755))
	}
	return &UnityProject{t: t, Root: root}
}

// Scene writes Assets/Scenes/<name> with the given documents joined in
// order. Documents come from GameObject, Transform, SceneRoots and
// MonoBehaviour.
func (p *UnityProject) Scene(name string, docs ...string) string {
	p.t.Helper()
	var b strings.Builder
	b.WriteString("%YAML 1.1\n%TAG !u! tag:unity3d.com,2011:\n")
	for _, d := range docs {
		b.WriteString(d)
	}
	return p.write(filepath.Join("Assets", "Scenes", name), b.String())
}

// Script writes Assets/Scripts/<rel>.cs and its .cs.meta carrying guid.
func (p *UnityProject) Script(rel, guid string) string {
	p.t.Helper()
	p.write(filepath.Join("Assets", "Scripts", rel+".cs"), "public class X {}\n")
	return p.write(filepath.Join("Assets", "Scripts", rel+".cs.meta"),
		fmt.Sprintf("fileFormatVersion: 2\nguid: %s\nMonoImporter:\n  serializedVersion: 2\n", guid))
}

func (p *UnityProject) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.Root, rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// GameObject returns a GameObject document.
func GameObject(anchor, name string) string {
	return fmt.Sprintf("--- !u!1 &%s\nGameObject:\n  m_ObjectHideFlags: 0\n  m_Name: %s\n", anchor, name)
}

// Transform returns a Transform document owned by owner with children in
// order.
func Transform(anchor, owner string, children ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- !u!4 &%s\nTransform:\n  m_GameObject: {fileID: %s}\n", anchor, owner)
	if len(children) == 0 {
		b.WriteString("  m_Children: []\n")
		return b.String()
	}
	b.WriteString("  m_Children:\n")
	for _, c := range children {
		fmt.Fprintf(&b, "  - {fileID: %s}\n", c)
	}
	return b.String()
}

// SceneRoots returns the root list document.
func SceneRoots(anchor string, roots ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- !u!1660057539 &%s\nSceneRoots:\n  m_ObjectHideFlags: 0\n  m_Roots:\n", anchor)
	for _, r := range roots {
		fmt.Fprintf(&b, "  - {fileID: %s}\n", r)
	}
	return b.String()
}

// MonoBehaviour returns a script usage document referencing guid.
func MonoBehaviour(anchor, owner, guid string) string {
	return fmt.Sprintf("--- !u!114 &%s\nMonoBehaviour:\n  m_GameObject: {fileID: %s}\n  m_Script: {fileID: 11500000, guid: %s, type: 3}\n", anchor, owner, guid)
}
