package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("run not found")

// Run is one row of run history.
type Run struct {
	Seq          int64     `json:"seq"`
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	ProjectRoot  string    `json:"project_root"`
	OutputDir    string    `json:"output_dir"`
	ToolVersion  string    `json:"tool_version"`
	Scenes       int       `json:"scenes"`
	FailedScenes int       `json:"failed_scenes"`
	Scripts      int       `json:"scripts"`
	Unused       int       `json:"unused"`
}

// SceneOutcome is the stored result of one scene in a run.
type SceneOutcome struct {
	Path    string        `json:"path"`
	Lines   int           `json:"lines"`
	Error   string        `json:"error,omitempty"`
	ErrorID ir.Identifier `json:"error_id,omitempty"`
}

// Failed reports whether the scene was skipped in that run.
func (o SceneOutcome) Failed() bool {
	return o.Error != ""
}

// RunInput is what a caller supplies to record a run.
type RunInput struct {
	ProjectRoot string
	OutputDir   string
	Scripts     int
	Scenes      []SceneOutcome
	Unused      []ir.ScriptAsset
}

// WriteRun records a run with its scene outcomes and unused scripts in one
// transaction. The returned Run carries the generated UUIDv7 ID.
func (s *Store) WriteRun(ctx context.Context, in RunInput) (Run, error) {
	run := Run{
		ID:          uuid.Must(uuid.NewV7()).String(),
		StartedAt:   s.now().UTC().Truncate(time.Second),
		ProjectRoot: in.ProjectRoot,
		OutputDir:   in.OutputDir,
		ToolVersion: ir.ToolVersion,
		Scenes:      len(in.Scenes),
		Scripts:     in.Scripts,
		Unused:      len(in.Unused),
	}
	for _, sc := range in.Scenes {
		if sc.Failed() {
			run.FailedScenes++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, project_root, output_dir, tool_version, scenes, failed_scenes, scripts, unused)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.Format(time.RFC3339),
		run.ProjectRoot,
		run.OutputDir,
		run.ToolVersion,
		run.Scenes,
		run.FailedScenes,
		run.Scripts,
		run.Unused,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	if run.Seq, err = res.LastInsertId(); err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	for i, sc := range in.Scenes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO scene_results (run_id, position, path, lines, error, error_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, sc.Path, sc.Lines, sc.Error, string(sc.ErrorID))
		if err != nil {
			return Run{}, fmt.Errorf("write scene result %s: %w", sc.Path, err)
		}
	}

	for i, a := range in.Unused {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO unused_scripts (run_id, position, relative_path, guid)
			VALUES (?, ?, ?, ?)
		`, run.ID, i, a.RelativePath, string(a.ID))
		if err != nil {
			return Run{}, fmt.Errorf("write unused script %s: %w", a.RelativePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	return run, nil
}

const runColumns = `seq, id, started_at, project_root, output_dir, tool_version, scenes, failed_scenes, scripts, unused`

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns ErrRunNotFound if there is no such run.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// SceneOutcomes returns the scenes of a run in processing order.
func (s *Store) SceneOutcomes(ctx context.Context, runID string) ([]SceneOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, lines, error, error_id
		FROM scene_results
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scene results: %w", err)
	}
	defer rows.Close()

	out := []SceneOutcome{}
	for rows.Next() {
		var o SceneOutcome
		var id string
		if err := rows.Scan(&o.Path, &o.Lines, &o.Error, &id); err != nil {
			return nil, fmt.Errorf("scan scene result: %w", err)
		}
		o.ErrorID = ir.Identifier(id)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scene results: %w", err)
	}
	return out, nil
}

// UnusedScripts returns the unused scripts reported by a run, in report
// order.
func (s *Store) UnusedScripts(ctx context.Context, runID string) ([]ir.ScriptAsset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT relative_path, guid
		FROM unused_scripts
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query unused scripts: %w", err)
	}
	defer rows.Close()

	out := []ir.ScriptAsset{}
	for rows.Next() {
		var a ir.ScriptAsset
		var guid string
		if err := rows.Scan(&a.RelativePath, &guid); err != nil {
			return nil, fmt.Errorf("scan unused script: %w", err)
		}
		a.ID = ir.Identifier(guid)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unused scripts: %w", err)
	}
	return out, nil
}

// ScriptHistory returns, newest first, the runs that reported the script
// with the given GUID as unused.
func (s *Store) ScriptHistory(ctx context.Context, guid ir.Identifier) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.seq, r.id, r.started_at, r.project_root, r.output_dir, r.tool_version,
		       r.scenes, r.failed_scenes, r.scripts, r.unused
		FROM runs r
		JOIN unused_scripts u ON u.run_id = r.id
		WHERE u.guid = ?
		ORDER BY r.seq DESC
	`, string(guid))
	if err != nil {
		return nil, fmt.Errorf("query script history: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate script history: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var started string
	err := row.Scan(
		&run.Seq,
		&run.ID,
		&started,
		&run.ProjectRoot,
		&run.OutputDir,
		&run.ToolVersion,
		&run.Scenes,
		&run.FailedScenes,
		&run.Scripts,
		&run.Unused,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", started, err)
	}
	return run, nil
}
