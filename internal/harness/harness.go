package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bunioslaw/UnityProjectParser/internal/cli"
	"github.com/Bunioslaw/UnityProjectParser/internal/config"
	"github.com/Bunioslaw/UnityProjectParser/internal/project"
)

// Harness materializes and runs one scenario.
type Harness struct {
	scenario *Scenario
	cfg      *config.Config
	dir      string
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh temporary directory which is removed
// before Run returns.
//
// Execution flow:
// 1. Parse the scenario's layout config (or use the default layout)
// 2. Write scenes and script metas
// 3. Run the parser over the project
// 4. Capture the snapshot and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	cfg := config.Default()
	if scenario.Config != "" {
		var err error
		cfg, err = config.Parse([]byte(scenario.Config), scenario.Name+".cue")
		if err != nil {
			return nil, fmt.Errorf("scenario config: %w", err)
		}
	}

	dir, err := os.MkdirTemp("", "unityparser-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	h := &Harness{
		scenario: scenario,
		cfg:      cfg,
		dir:      dir,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return h.run()
}

func (h *Harness) projectRoot() string { return filepath.Join(h.dir, "project") }
func (h *Harness) outputDir() string   { return filepath.Join(h.dir, "out") }

func (h *Harness) scenesDir() string {
	return filepath.Join(h.projectRoot(), filepath.FromSlash(h.cfg.ScenesDir))
}

func (h *Harness) scriptsDir() string {
	return filepath.Join(h.projectRoot(), filepath.FromSlash(h.cfg.ScriptsDir))
}

func (h *Harness) run() (*Result, error) {
	if err := h.materialize(); err != nil {
		return nil, err
	}

	run, err := project.Run(project.Options{
		ProjectRoot: h.projectRoot(),
		OutputDir:   h.outputDir(),
		Config:      h.cfg,
		Logger:      h.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", h.scenario.Name, err)
	}

	snapshot, err := h.snapshot(run)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Run = run
	result.Snapshot = snapshot
	for _, msg := range EvaluateAssertions(result, h.scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// materialize writes the scenario's files. Both input directories are
// created even when empty so discovery succeeds.
func (h *Harness) materialize() error {
	for _, dir := range []string{h.scenesDir(), h.scriptsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	for _, sc := range h.scenario.Scenes {
		if err := writeFile(filepath.Join(h.scenesDir(), filepath.FromSlash(sc.Name)), sc.YAML); err != nil {
			return err
		}
	}
	for _, sf := range h.scenario.Scripts {
		if err := writeFile(filepath.Join(h.scriptsDir(), filepath.FromSlash(sf.Path)), sf.Content()); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// snapshot reads back the dumps and strips temporary paths.
func (h *Harness) snapshot(run *project.Result) (Snapshot, error) {
	s := Snapshot{
		Scenario: h.scenario.Name,
		Scenes:   make([]SceneSnapshot, 0, len(run.Scenes)),
		Unused:   run.Unused,
	}

	for _, sc := range run.Scenes {
		name, err := relSlash(h.scenesDir(), sc.Path)
		if err != nil {
			return Snapshot{}, err
		}
		snap := SceneSnapshot{Name: name}
		if sc.Failed() {
			snap.Error = cli.ErrorCode(sc.Err)
			snap.ErrorID = string(sc.ErrorID)
		} else {
			data, err := os.ReadFile(sc.DumpPath)
			if err != nil {
				return Snapshot{}, fmt.Errorf("read dump: %w", err)
			}
			snap.Dump = splitLines(string(data))
		}
		s.Scenes = append(s.Scenes, snap)
	}

	for _, f := range run.ScriptFailures {
		rel, err := relSlash(h.scriptsDir(), f.Path)
		if err != nil {
			return Snapshot{}, err
		}
		s.ScriptFailures = append(s.ScriptFailures, rel)
	}
	return s, nil
}

func relSlash(base, path string) (string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
