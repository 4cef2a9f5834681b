// Command mython is the Mython interpreter CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mython-lang/mython/pkg/diagnostics"
	"github.com/mython-lang/mython/pkg/interp"
	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/parser"
	"github.com/mython-lang/mython/pkg/runtime"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mython <command> [options]")
		fmt.Fprintln(os.Stderr, "commands: run, check")
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "help", "--help", "-h":
		fmt.Println("usage: mython <command> [options]")
		fmt.Println("commands:")
		fmt.Println("  run <file|->    execute a Mython program")
		fmt.Println("  check <file|->  parse a program without executing it")
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

func cmdRun(args []string) int {
	file, pretty, ok := parseArgs(args, "run")
	if !ok {
		return 1
	}
	src, code := openSource(file)
	if code != 0 {
		return code
	}
	defer src.Close()

	ip := interp.New()
	if err := ip.Run(src); err != nil {
		reportError(err, pretty)
		return exitCodeFor(err)
	}
	return 0
}

func cmdCheck(args []string) int {
	file, pretty, ok := parseArgs(args, "check")
	if !ok {
		return 1
	}
	src, code := openSource(file)
	if code != 0 {
		return code
	}
	defer src.Close()

	ip := interp.New()
	if err := ip.Check(src); err != nil {
		reportError(err, pretty)
		return exitCodeFor(err)
	}
	return 0
}

func parseArgs(args []string, cmd string) (file string, pretty, ok bool) {
	for _, arg := range args {
		switch {
		case arg == "--pretty":
			pretty = true
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			file = arg
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", arg)
			return "", false, false
		}
	}
	if file == "" {
		fmt.Fprintf(os.Stderr, "usage: mython %s <file|-> [--pretty]\n", cmd)
		return "", false, false
	}
	return file, pretty, true
}

func openSource(file string) (io.ReadCloser, int) {
	if file == "-" {
		return io.NopCloser(os.Stdin), 0
	}
	f, err := os.Open(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", file, err)
		return nil, 1
	}
	return f, 0
}

func reportError(err error, pretty bool) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(lexErr.Diag, pretty))
		return
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(parseErr.Diag, pretty))
		return
	}
	var rtErr *runtime.Error
	if errors.As(err, &rtErr) {
		diag := diagnostics.MakeDiag(rtErr.Code, rtErr.Message, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(diag, pretty))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func exitCodeFor(err error) int {
	var lexErr *lexer.Error
	var parseErr *parser.Error
	if errors.As(err, &lexErr) || errors.As(err, &parseErr) {
		return 2
	}
	var rtErr *runtime.Error
	if errors.As(err, &rtErr) {
		return 3
	}
	return 4
}
