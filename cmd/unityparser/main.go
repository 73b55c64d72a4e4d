// Command unityparser dumps the GameObject hierarchy of every scene in a
// Unity project and reports scripts no scene references.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bunioslaw/UnityProjectParser/internal/cli"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

// run executes the root command and returns the process exit code.
func run(outW, errW io.Writer, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand()
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		// ExitErrors have already been reported by the command itself.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(errW, "unityparser: %v\n", err)
			fmt.Fprintln(errW, "Run 'unityparser --help' for usage.")
		}
	}
	return cli.GetExitCode(err)
}
