package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "iku-cli 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	closeLogs, err := configureLogging(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLogs()

	if len(remaining) == 0 {
		printUsage()
		return 1
	}
	switch remaining[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(remaining[1:])
	default:
		return runEntry(remaining)
	}
}
