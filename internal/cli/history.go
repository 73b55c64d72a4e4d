package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	RunID    string
	Script   string
}

// RunDetail is the JSON payload of `history --run`.
type RunDetail struct {
	Run    store.Run            `json:"run"`
	Scenes []store.SceneOutcome `json:"scenes"`
	Unused []ir.ScriptAsset     `json:"unused"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `List runs recorded with --db, newest first.

With --run, show the scenes and unused scripts of one run.
With --script, list the runs that reported a script GUID as unused.

Example:
  unityparser history --db history.db --limit 5
  unityparser history --db history.db --run 0192f7a4-...
  unityparser history --db history.db --script 9a1e0000000000000000000000000000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "maximum runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show one run in detail")
	cmd.Flags().StringVar(&opts.Script, "script", "", "list runs that reported this script GUID as unused")
	_ = cmd.MarkFlagRequired("db")
	cmd.MarkFlagsMutuallyExclusive("run", "script")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// History only reads; do not create a database as a side effect.
	if _, err := os.Stat(opts.Database); err != nil {
		return outputCommandError(formatter, ErrCodeDatabase, fmt.Errorf("database not found: %w", err))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(formatter, ErrCodeDatabase, err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case opts.RunID != "":
		return showRun(ctx, st, formatter, opts.RunID)
	case opts.Script != "":
		runs, err := st.ScriptHistory(ctx, ir.Identifier(opts.Script))
		if err != nil {
			return outputCommandError(formatter, ErrCodeDatabase, err)
		}
		return outputRuns(formatter, runs)
	default:
		runs, err := st.ListRuns(ctx, opts.Limit)
		if err != nil {
			return outputCommandError(formatter, ErrCodeDatabase, err)
		}
		return outputRuns(formatter, runs)
	}
}

func showRun(ctx context.Context, st *store.Store, formatter *OutputFormatter, id string) error {
	run, err := st.ReadRun(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitFailure, ErrCodeDatabase, err)
		}
		return outputCommandError(formatter, ErrCodeDatabase, err)
	}
	scenes, err := st.SceneOutcomes(ctx, id)
	if err != nil {
		return outputCommandError(formatter, ErrCodeDatabase, err)
	}
	unused, err := st.UnusedScripts(ctx, id)
	if err != nil {
		return outputCommandError(formatter, ErrCodeDatabase, err)
	}

	detail := RunDetail{Run: run, Scenes: scenes, Unused: unused}
	if formatter.JSON() {
		return formatter.Success(detail)
	}

	w := formatter.Writer
	writeRunLine(w, run)
	fmt.Fprintln(w)
	for _, sc := range scenes {
		if sc.Failed() {
			fmt.Fprintf(w, "✗ %s\n  %s\n", sc.Path, sc.Error)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%d line(s))\n", sc.Path, sc.Lines)
	}
	if len(unused) > 0 {
		fmt.Fprintln(w, "\nUnused scripts:")
		for _, a := range unused {
			fmt.Fprintf(w, "  %s  %s\n", a.ID, a.RelativePath)
		}
	}
	return nil
}

func outputRuns(formatter *OutputFormatter, runs []store.Run) error {
	if formatter.JSON() {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, run := range runs {
		writeRunLine(formatter.Writer, run)
	}
	return nil
}

func writeRunLine(w io.Writer, run store.Run) {
	fmt.Fprintf(w, "%s  %s  %s  scenes %d (%d failed)  unused %d/%d\n",
		run.ID,
		run.StartedAt.Format("2006-01-02 15:04:05"),
		run.ProjectRoot,
		run.Scenes,
		run.FailedScenes,
		run.Unused,
		run.Scripts,
	)
}
