package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bunioslaw/UnityProjectParser/internal/config"
	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/project"
	"github.com/Bunioslaw/UnityProjectParser/internal/store"
)

// DumpOptions holds flags for the dump run.
type DumpOptions struct {
	*RootOptions
	ConfigPath string
	Database   string

	// StoreOptions are passed to store.Open (for testing).
	StoreOptions []store.Option
}

// DumpSummary is the JSON payload of a dump run.
type DumpSummary struct {
	RunID          string           `json:"run_id,omitempty"`
	Scenes         []SceneSummary   `json:"scenes"`
	Scripts        int              `json:"scripts"`
	Unused         []ir.ScriptAsset `json:"unused"`
	ScriptFailures []FileFailure    `json:"script_failures,omitempty"`
	Report         string           `json:"report"`
}

// SceneSummary is one scene in a DumpSummary.
type SceneSummary struct {
	Path  string    `json:"path"`
	Dump  string    `json:"dump,omitempty"`
	Lines int       `json:"lines"`
	Error *CLIError `json:"error,omitempty"`
}

// FileFailure is a script meta file that could not be audited.
type FileFailure struct {
	Path  string   `json:"path"`
	Error CLIError `json:"error"`
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runDump(opts *DumpOptions, projectRoot, outputDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return outputCommandError(formatter, ErrCodeConfig, err)
	}
	formatter.VerboseLog("Layout: scenes %s/*%s, scripts %s/**/*%s",
		cfg.ScenesDir, cfg.SceneExt, cfg.ScriptsDir, cfg.ScriptExt)

	result, err := project.Run(project.Options{
		ProjectRoot: projectRoot,
		OutputDir:   outputDir,
		Config:      cfg,
		Logger:      logger,
	})
	if err != nil {
		return outputCommandError(formatter, ErrorCode(err), err)
	}

	summary := summarize(result)

	if opts.Database != "" {
		runID, err := recordRun(cmd.Context(), opts, projectRoot, outputDir, result)
		if err != nil {
			return outputCommandError(formatter, ErrCodeDatabase, err)
		}
		summary.RunID = runID
		logger.Debug("run recorded", "db", opts.Database, "run_id", runID)
	}

	status := StatusOK
	if result.Partial() {
		status = StatusPartial
	}
	if formatter.JSON() {
		if err := formatter.Result(status, summary); err != nil {
			return err
		}
	} else {
		writeDumpText(formatter.Writer, summary)
	}

	if result.Partial() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scene(s) and %d script(s) failed",
			result.FailedScenes(), len(result.ScriptFailures)))
	}
	return nil
}

func summarize(result *project.Result) DumpSummary {
	s := DumpSummary{
		Scenes:  make([]SceneSummary, 0, len(result.Scenes)),
		Scripts: len(result.Scripts),
		Unused:  result.Unused,
		Report:  result.ReportPath,
	}
	for _, sc := range result.Scenes {
		sum := SceneSummary{Path: sc.Path, Dump: sc.DumpPath, Lines: sc.Lines}
		if sc.Failed() {
			sum.Error = &CLIError{Code: ErrorCode(sc.Err), Message: sc.Error}
			if sc.ErrorID != "" {
				sum.Error.Details = map[string]string{"id": string(sc.ErrorID)}
			}
		}
		s.Scenes = append(s.Scenes, sum)
	}
	for _, f := range result.ScriptFailures {
		s.ScriptFailures = append(s.ScriptFailures, FileFailure{
			Path:  f.Path,
			Error: CLIError{Code: ErrorCode(f.Err), Message: f.Error},
		})
	}
	return s
}

func writeDumpText(w io.Writer, s DumpSummary) {
	for _, sc := range s.Scenes {
		name := filepath.Base(sc.Path)
		if sc.Error != nil {
			fmt.Fprintf(w, "✗ %s\n  %s: %s\n", name, sc.Error.Code, sc.Error.Message)
			continue
		}
		fmt.Fprintf(w, "✓ %s → %s (%d line(s))\n", name, sc.Dump, sc.Lines)
	}
	for _, f := range s.ScriptFailures {
		fmt.Fprintf(w, "✗ %s\n  %s: %s\n", f.Path, f.Error.Code, f.Error.Message)
	}

	fmt.Fprintf(w, "\n%d of %d script(s) unused → %s\n", len(s.Unused), s.Scripts, s.Report)
	for _, a := range s.Unused {
		fmt.Fprintf(w, "  %s  %s\n", a.ID, a.RelativePath)
	}
	if s.RunID != "" {
		fmt.Fprintf(w, "\nRecorded run %s\n", s.RunID)
	}
}

func recordRun(ctx context.Context, opts *DumpOptions, projectRoot, outputDir string, result *project.Result) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database, opts.StoreOptions...)
	if err != nil {
		return "", err
	}
	defer st.Close()

	in := store.RunInput{
		ProjectRoot: projectRoot,
		OutputDir:   outputDir,
		Scripts:     len(result.Scripts),
		Unused:      result.Unused,
	}
	for _, sc := range result.Scenes {
		in.Scenes = append(in.Scenes, store.SceneOutcome{
			Path:    sc.Path,
			Lines:   sc.Lines,
			Error:   sc.Error,
			ErrorID: sc.ErrorID,
		})
	}

	run, err := st.WriteRun(ctx, in)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// outputCommandError reports a command-level failure (exit code 2).
func outputCommandError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}
