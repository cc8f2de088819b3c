package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

type cliOptions struct {
	verbose bool
	logFile string
}

// parseGlobalFlags consumes leading global flags and returns whatever is
// left, normally the subcommand or the program path.
func parseGlobalFlags(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	rest := args
	for len(rest) > 0 {
		switch {
		case rest[0] == "--verbose" || rest[0] == "-v":
			opts.verbose = true
			rest = rest[1:]
		case strings.HasPrefix(rest[0], "--log-file="):
			opts.logFile = strings.TrimPrefix(rest[0], "--log-file=")
			if opts.logFile == "" {
				return opts, rest, fmt.Errorf("--log-file requires a path")
			}
			rest = rest[1:]
		default:
			return opts, rest, nil
		}
	}
	return opts, rest, nil
}

// configureLogging installs the default slog logger: human-readable text on
// stderr, plus a JSON stream appended to --log-file when one is given. The
// returned function closes the log file.
func configureLogging(opts cliOptions) (func(), error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	closeLogs := func() {}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeLogs = func() { f.Close() }
	}
	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return closeLogs, nil
}
