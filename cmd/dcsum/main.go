package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	dirchecksums "github.com/mattkeenan/dirchecksums/pkg"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	setupLogger(stderr)

	ctx, cancel := setupSignalHandler(context.Background())
	defer cancel()

	cmd := newRootCmd(&app{fs: afero.NewOsFs(), stdout: stdout, stderr: stderr})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return dirchecksums.ExitCode(err)
}

// printError describes a fatal error on stderr. Differing files were already
// listed by the report.
func printError(w io.Writer, err error) {
	var diffErr *dirchecksums.FilesDifferError
	if errors.As(err, &diffErr) {
		return
	}

	var lenErr *dirchecksums.HashLengthError
	var parseErr *dirchecksums.ParseError
	switch {
	case errors.As(err, &lenErr), errors.As(err, &parseErr):
		dirchecksums.WriteError(w, err)
	case dirchecksums.IsCancelled(err):
		fmt.Fprintln(w, "dcsum: interrupted")
	default:
		fmt.Fprintf(w, "dcsum: %v\n", err)
	}
}
