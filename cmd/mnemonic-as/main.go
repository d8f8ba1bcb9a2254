// Command mnemonic-as assembles one or more .asm source files into
// .bin/.hex/.lst/.obj/.sym artifacts.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pyxxil/mnemonic/config"
	"github.com/pyxxil/mnemonic/driver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mnemonic-as", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		help       bool
		printAST   bool
		treatError bool
		quiet      bool
		noWarn     bool
		noColor    bool
	)

	fs.BoolVar(&help, "h", false, "Print this help message and exit")
	fs.BoolVar(&help, "help", false, "Print this help message and exit")
	fs.BoolVar(&printAST, "print-ast", false, "Dump each token's AST block after lexing")
	fs.BoolVar(&treatError, "e", false, "Treat warnings as errors")
	fs.BoolVar(&treatError, "error", false, "Treat warnings as errors")
	fs.BoolVar(&quiet, "q", false, "Suppress stdout/stderr output")
	fs.BoolVar(&quiet, "quiet", false, "Suppress stdout/stderr output")
	fs.BoolVar(&noWarn, "no-warn", false, "Suppress warnings (no effect if -e is set)")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI escapes")
	fs.BoolVar(&noColor, "no-colour", false, "Disable ANSI escapes")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mnemonic-as [OPTIONS] <file> [<file>...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if help {
		fs.Usage()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts := driver.Options{
		PrintAST:       printAST,
		WarningsAsErr:  treatError,
		Quiet:          quiet,
		NoWarn:         noWarn,
		NoColor:        noColor || !cfg.Listing.ColorOutput,
		IncludeEnabled: cfg.Include.Enabled,
		ListingWidth:   cfg.Listing.Width,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}

	return driver.Run(fs.Args(), opts)
}
