package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  iku [--verbose] [--log-file=<path>] run <file.iku>")
	fmt.Fprintln(os.Stderr, "  iku [--verbose] [--log-file=<path>] <file.iku>")
	fmt.Fprintln(os.Stderr, "  iku --version")
	fmt.Fprintln(os.Stderr, "  iku --help")
}
