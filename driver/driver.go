// Package driver implements the assembler's fourth stage (C9): it
// orchestrates the tokenizer, operand binder, symbol builder, and encoder
// over one input file at a time and writes the five resulting artifacts.
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyxxil/mnemonic/encoder"
	"github.com/pyxxil/mnemonic/parser"
)

const (
	colourRed    = "\x1b[31m"
	colourYellow = "\x1b[33m"
	colourReset  = "\x1b[0m"
)

// Options configures one AssembleFile run, mirroring the CLI flags (§6).
type Options struct {
	PrintAST       bool
	WarningsAsErr  bool
	Quiet          bool
	NoWarn         bool
	NoColor        bool
	IncludeEnabled bool
	ListingWidth   int

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultOptions returns options with a 30-column listing label field,
// writing to the process's standard streams, with every flag (including
// IncludeEnabled) off.
func DefaultOptions() Options {
	return Options{ListingWidth: 30, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run assembles every file in files with opts, returning the sum of their
// per-file failure counts (0 = success). An empty files list is reported
// as a single top-level error and returns 1, matching §6's "No input
// files" behavior.
func Run(files []string, opts Options) int {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if len(files) == 0 {
		fmt.Fprintln(stderr, "No input files")
		return 1
	}

	status := 0
	for _, file := range files {
		status += AssembleFile(file, opts)
	}
	return status
}

// AssembleFile runs C1/C5-C8 over path and, on success, writes path's five
// output artifacts (.bin/.hex/.lst/.obj/.sym) alongside it. It returns 1 if
// the file produced at least one error (the per-file failure count the CLI
// sums into its exit status), 0 otherwise.
func AssembleFile(path string, opts Options) int {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	bus := parser.NewBus()
	subscribeSinks(bus, opts, stdout, stderr)

	src, err := parser.LoadSource(path)
	if err != nil {
		reportIOError(stderr, opts, fmt.Sprintf("Unable to open file %s: %v", path, err))
		return 1
	}

	tokens, err := tokenize(path, src, bus, opts)
	if err != nil {
		reportIOError(stderr, opts, err.Error())
		return 1
	}
	tokens = parser.BindOperands(tokens, src, bus)

	if opts.PrintAST && !opts.Quiet {
		for _, tok := range tokens {
			fmt.Fprint(stdout, tok.AST())
		}
	}

	lexFailed := bus.Errors.Count() > 0 || (opts.WarningsAsErr && bus.Warnings.Count() > 0)
	bus.Warnings.NotifyAllAndClear()
	if lexFailed {
		bus.Errors.NotifyAllAndClear()
		return 1
	}

	symbols, ok := parser.BuildSymbols(tokens, src, bus)
	parseFailed := !ok || (opts.WarningsAsErr && bus.Warnings.Count() > 0)
	bus.Warnings.NotifyAllAndClear()
	if parseFailed {
		bus.Errors.NotifyAllAndClear()
		return 1
	}

	enc := encoder.NewEncoder(symbols, opts.ListingWidth)
	enc.Encode(tokens)

	if err := writeArtifacts(path, tokens, symbols); err != nil {
		reportIOError(stderr, opts, err.Error())
		return 1
	}

	return 0
}

// tokenize runs C5, splicing .include chains through an Includer when the
// extension is enabled.
func tokenize(path string, src *parser.Source, bus *parser.Bus, opts Options) ([]*parser.Token, error) {
	if opts.IncludeEnabled {
		inc := parser.NewIncluder(bus)
		return inc.TokenizeFile(path)
	}
	tz := parser.NewTokenizer(path, bus)
	return tz.TokenizeSource(src), nil
}

// subscribeSinks wires the error and warning queues to stdout/stderr per
// opts, matching the driver's display policy (§6, §7): errors always print
// in red unless quiet; warnings print in yellow unless --no-warn, or in red
// as promoted errors when --error is set (the promotion happens at the
// sink, never at enqueue).
func subscribeSinks(bus *parser.Bus, opts Options, stdout, stderr io.Writer) {
	if opts.Quiet {
		return
	}

	bus.Errors.Subscribe(parser.Sink{
		Name:         "driver",
		WantsUpdates: false,
		Func: func(_ string, d parser.Diagnostic) {
			fmt.Fprint(stderr, label("Error", colourRed, opts.NoColor), d.Render(opts.NoColor), "\n")
		},
	})

	bus.Warnings.Subscribe(parser.Sink{
		Name:         "driver",
		WantsUpdates: false,
		Func: func(_ string, d parser.Diagnostic) {
			if opts.WarningsAsErr {
				fmt.Fprint(stderr, label("Error", colourRed, opts.NoColor), d.Render(opts.NoColor), "\n")
				return
			}
			if opts.NoWarn {
				return
			}
			fmt.Fprint(stdout, label("Warning", colourYellow, opts.NoColor), d.Render(opts.NoColor), "\n")
		},
	})
}

func label(word, colour string, noColor bool) string {
	if noColor {
		return word + ": "
	}
	return colour + word + colourReset + ": "
}

func reportIOError(stderr io.Writer, opts Options, message string) {
	if opts.Quiet {
		return
	}
	fmt.Fprintln(stderr, label("Error", colourRed, opts.NoColor)+message)
}

// writeArtifacts writes the five output files for an assembled token
// stream, stripping path's extension and appending .bin/.hex/.lst/.obj/
// .sym. Every file is closed on return, success or failure.
func writeArtifacts(path string, tokens []*parser.Token, symbols *parser.SymbolTable) error {
	stem := strings.TrimSuffix(path, filepath.Ext(path))

	bin, err := os.Create(stem + ".bin") // #nosec G304 -- output path derived from user-provided input file
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", stem+".bin", err)
	}
	defer bin.Close()

	hex, err := os.Create(stem + ".hex") // #nosec G304
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", stem+".hex", err)
	}
	defer hex.Close()

	lst, err := os.Create(stem + ".lst") // #nosec G304
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", stem+".lst", err)
	}
	defer lst.Close()

	obj, err := os.Create(stem + ".obj") // #nosec G304
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", stem+".obj", err)
	}
	defer obj.Close()

	sym, err := os.Create(stem + ".sym") // #nosec G304
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", stem+".sym", err)
	}
	defer sym.Close()

	for _, tok := range tokens {
		if tok.Assembled == nil {
			continue
		}
		word := tok.Assembled.Bin
		if _, err := fmt.Fprintf(bin, "%016b\n", word); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(hex, "%04X\n", word); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(lst, tok.Assembled.Listing); err != nil {
			return err
		}
		if _, err := obj.Write([]byte{byte(word >> 8), byte(word)}); err != nil {
			return err
		}
	}

	return writeSymbols(sym, symbols)
}

// writeSymbols writes the symbol table preamble and one line per symbol,
// in name order, the format §4.6 specifies.
func writeSymbols(w io.Writer, symbols *parser.SymbolTable) error {
	if _, err := fmt.Fprintf(w, "// Symbol table\n// Scope Level 0:\n//\t%-30s Page Address\n//\t%s ------------\n",
		"Symbol Name", strings.Repeat("-", 30)); err != nil {
		return err
	}
	for _, name := range symbols.Names() {
		sym, _ := symbols.Lookup(name)
		if _, err := fmt.Fprintf(w, "//\t%-30s %04X\n", sym.Name, sym.Address); err != nil {
			return err
		}
	}
	return nil
}
