package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the unityparser command. Invoked with a project
// root and an output directory it runs the dump; subcommands inspect
// stored history.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	dumpOpts := &DumpOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "unityparser <project-root> <output-dir>",
		Short: "Dump Unity scene hierarchies and find unused scripts",
		Long: `Parse every scene in a Unity project, write its GameObject hierarchy
to <output-dir>/<scene>.dump and list the C# scripts no scene references
in <output-dir>/UnusedScripts.csv.

Exit codes:
  0  all scenes and scripts processed
  1  finished, but one or more scenes or scripts failed
  2  command error (arguments, config, I/O, database)

Example:
  unityparser ./MyGame ./out
  unityparser ./MyGame ./out --config layout.cue --db history.db --format json`,
		Version:       ir.ToolVersion,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(dumpOpts, args[0], args[1], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.Flags().StringVarP(&dumpOpts.ConfigPath, "config", "c", "", "CUE file describing the project layout")
	cmd.Flags().StringVar(&dumpOpts.Database, "db", "", "record the run in this SQLite database")

	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
