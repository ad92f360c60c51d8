package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	dirchecksums "github.com/mattkeenan/dirchecksums/pkg"
	"github.com/phsym/console-slog"
)

const timeFormat string = "15:04:05.000"

// setupLogger routes library and default logging to a console handler on w.
// The level follows dirchecksums.SetVerboseLevel.
func setupLogger(w io.Writer) {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	handler := console.NewHandler(w, &console.HandlerOptions{
		Level:      dirchecksums.LogLevel(),
		TimeFormat: timeFormat,
		NoColor:    noColor,
	})
	log := slog.New(handler)
	slog.SetDefault(log)
	dirchecksums.SetLogger(log)
}
