// Command mnemonic-sim loads a .obj file produced by mnemonic-as and runs
// it on the toy register machine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pyxxil/mnemonic/config"
	"github.com/pyxxil/mnemonic/vm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mnemonic-sim", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var help bool
	fs.BoolVar(&help, "h", false, "Print this help message and exit")
	fs.BoolVar(&help, "help", false, "Print this help message and exit")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mnemonic-sim <file.obj>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if help {
		fs.Usage()
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "No input file")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	words, err := vm.LoadObjFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	machine := vm.NewVM(cfg.Simulator.MaxCycles)
	machine.LoadProgram(words)

	if err := machine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
