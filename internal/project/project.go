// Package project runs the parser over a whole Unity project.
//
// A run has two phases. Every scene is processed first, each with a fresh
// registry, sharing one run-scoped referenced-script set. Only after the last
// scene does the usage audit read that set, because a script may be
// referenced by any scene regardless of discovery order.
//
// Failure policy, by scope:
//
//   - scene: a scene that fails to read, decode, register or render is
//     skipped (no dump) and recorded in Result.Scenes. Its script references
//     count only if every record registered; a render failure does not
//     retract them.
//   - script: a meta file that fails to read or carries no guid is recorded in
//     Result.ScriptFailures and left out of the report.
//   - run: failure to discover inputs or to write any output aborts the run
//     with an *IOError.
package project

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/Bunioslaw/UnityProjectParser/internal/audit"
	"github.com/Bunioslaw/UnityProjectParser/internal/config"
	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/report"
	"github.com/Bunioslaw/UnityProjectParser/internal/scan"
	"github.com/Bunioslaw/UnityProjectParser/internal/scene"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

// Options configures a run.
type Options struct {
	ProjectRoot string
	OutputDir   string

	// Config is the project layout. Nil selects config.Default().
	Config *config.Config

	// Logger receives progress and failure records. Nil discards them.
	Logger *slog.Logger
}

// SceneResult is the outcome of one scene.
type SceneResult struct {
	Path     string        `json:"path"`
	DumpPath string        `json:"dump_path,omitempty"`
	Lines    int           `json:"lines"`
	Stats    scene.Stats   `json:"stats"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	ErrorID  ir.Identifier `json:"error_id,omitempty"`
}

// Failed reports whether the scene was skipped.
func (r SceneResult) Failed() bool {
	return r.Err != nil
}

// ScriptFailure records a script meta file that could not be audited.
type ScriptFailure struct {
	Path  string `json:"path"`
	Err   error  `json:"-"`
	Error string `json:"error"`
}

// Result summarizes a completed run.
type Result struct {
	Scenes         []SceneResult           `json:"scenes"`
	Scripts        []ir.ScriptAsset        `json:"-"`
	Unused         []ir.ScriptAsset        `json:"unused"`
	ScriptFailures []ScriptFailure         `json:"script_failures,omitempty"`
	ReportPath     string                  `json:"report_path"`
	Referenced     *ir.ReferencedScriptSet `json:"-"`
}

// FailedScenes counts scenes that were skipped.
func (r *Result) FailedScenes() int {
	n := 0
	for _, s := range r.Scenes {
		if s.Failed() {
			n++
		}
	}
	return n
}

// Partial reports whether any scene or script failed.
func (r *Result) Partial() bool {
	return r.FailedScenes() > 0 || len(r.ScriptFailures) > 0
}

// Runner holds the per-run collaborators.
type Runner struct {
	opts       Options
	cfg        *config.Config
	log        *slog.Logger
	classifier *scene.Classifier
	resolver   *scene.Resolver
}

// NewRunner prepares a runner, filling defaults for unset options.
func NewRunner(opts Options) *Runner {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		opts:       opts,
		cfg:        cfg,
		log:        logger,
		classifier: scene.NewClassifier(cfg.TransformKinds...),
		resolver:   scene.NewResolver(cfg.MaxDepth),
	}
}

// Run processes every scene, then audits scripts. See the package
// documentation for the failure policy.
func Run(opts Options) (*Result, error) {
	return NewRunner(opts).Run()
}

// Run executes the two phases.
func (r *Runner) Run() (*Result, error) {
	root := r.opts.ProjectRoot
	scenesDir := filepath.Join(root, filepath.FromSlash(r.cfg.ScenesDir))
	scriptsDir := filepath.Join(root, filepath.FromSlash(r.cfg.ScriptsDir))

	scenes, err := scan.Scenes(scenesDir, r.cfg.SceneExt)
	if err != nil {
		return nil, &IOError{Op: "scan", Path: scenesDir, Err: err}
	}
	metas, err := scan.ScriptMetas(scriptsDir, r.cfg.ScriptExt)
	if err != nil {
		return nil, &IOError{Op: "scan", Path: scriptsDir, Err: err}
	}
	r.log.Info("inputs discovered", "scenes", len(scenes), "scripts", len(metas))

	if err := report.EnsureDir(r.opts.OutputDir); err != nil {
		return nil, &IOError{Op: "mkdir", Path: r.opts.OutputDir, Err: err}
	}

	refs := ir.NewReferencedScriptSet()
	result := &Result{Referenced: refs}

	for _, path := range scenes {
		res, err := r.processScene(path, refs)
		if err != nil {
			return nil, err
		}
		result.Scenes = append(result.Scenes, res)
	}

	// All scenes are done; refs is complete.
	for _, path := range metas {
		asset, err := audit.LoadScriptAsset(root, path, r.cfg.ScriptExt)
		if err != nil {
			r.log.Error("script skipped", "file", path, "error", err)
			result.ScriptFailures = append(result.ScriptFailures, ScriptFailure{Path: path, Err: err, Error: err.Error()})
			continue
		}
		result.Scripts = append(result.Scripts, asset)
	}

	result.Unused = audit.Audit(refs, result.Scripts)
	reportPath, err := report.WriteUnusedScripts(r.opts.OutputDir, result.Unused)
	if err != nil {
		return nil, &IOError{Op: "write", Path: reportPath, Err: err}
	}
	result.ReportPath = reportPath

	r.log.Info("audit complete",
		"scripts", len(result.Scripts),
		"referenced", refs.Len(),
		"unused", len(result.Unused),
		"report", reportPath,
	)
	return result, nil
}

// processScene runs one scene through decode, registration and rendering.
// Scene-scoped failures are returned inside the SceneResult; only an output
// write failure is returned as an error.
func (r *Runner) processScene(path string, refs *ir.ReferencedScriptSet) (SceneResult, error) {
	res := SceneResult{Path: path}
	r.log.Debug("processing scene", "file", path)

	text, err := r.renderScene(path, refs, &res)
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		res.ErrorID = scene.ErrorIdentifier(err)
		r.log.Error("scene skipped", "file", path, "id", res.ErrorID, "error", err)
		return res, nil
	}

	dumpPath, err := report.WriteDump(r.opts.OutputDir, path, text)
	if err != nil {
		return res, &IOError{Op: "write", Path: dumpPath, Err: err}
	}
	res.DumpPath = dumpPath

	r.log.Info("scene written",
		"file", path,
		"dump", dumpPath,
		"objects", res.Stats.Objects,
		"lines", res.Lines,
	)
	return res, nil
}

func (r *Runner) renderScene(path string, refs *ir.ReferencedScriptSet, res *SceneResult) (string, error) {
	docs, err := yamldoc.DecodeFile(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", &IOError{Op: "read", Path: path, Err: err}
		}
		return "", err
	}

	reg, err := scene.Load(docs, r.classifier, refs)
	if err != nil {
		return "", err
	}
	res.Stats = reg.Stats()

	lines, err := r.resolver.Resolve(reg)
	if err != nil {
		return "", err
	}
	res.Lines = len(lines)

	return scene.FormatLines(lines), nil
}
