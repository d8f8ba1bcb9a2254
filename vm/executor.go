package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	opLoad      uint16 = 0x0000
	opStore     uint16 = 0x1000
	opClear     uint16 = 0x2000
	opAdd       uint16 = 0x3000
	opIncrement uint16 = 0x4000
	opSubtract  uint16 = 0x5000
	opDecrement uint16 = 0x6000
	opCompare   uint16 = 0x7000
	opJump      uint16 = 0x8000
	opJumpGT    uint16 = 0x9000
	opJumpEQ    uint16 = 0xA000
	opJumpLT    uint16 = 0xB000
	opJumpNEQ   uint16 = 0xC000
	opIn        uint16 = 0xD000
	opOut       uint16 = 0xE000
	opHalt      uint16 = 0xF000
)

// VM is the complete simulator: CPU state plus memory and the I/O streams
// IN/OUT read from and write to.
type VM struct {
	CPU       *CPU
	Memory    *Memory
	MaxCycles uint64

	Output      io.Writer
	stdinReader *bufio.Reader
}

// NewVM returns a VM reset to its initial state, reading from os.Stdin
// and writing to os.Stdout. maxCycles bounds Run; 0 means unbounded.
func NewVM(maxCycles uint64) *VM {
	return &VM{
		CPU:         NewCPU(),
		Memory:      &Memory{},
		MaxCycles:   maxCycles,
		Output:      os.Stdout,
		stdinReader: bufio.NewReader(os.Stdin),
	}
}

// SetStdin redirects IN's input source, for testing or host integration.
func (vm *VM) SetStdin(r io.Reader) { vm.stdinReader = bufio.NewReader(r) }

// SetOutput redirects OUT's destination.
func (vm *VM) SetOutput(w io.Writer) { vm.Output = w }

// LoadProgram writes words into memory starting at address 0, the
// layout an .obj file produces.
func (vm *VM) LoadProgram(words []uint16) { vm.Memory.Load(words) }

// Run decodes and executes instructions until HALT, or until MaxCycles
// is exceeded (if nonzero).
func (vm *VM) Run() error {
	for !vm.CPU.Halted {
		if vm.MaxCycles > 0 && vm.CPU.Cycles >= vm.MaxCycles {
			return fmt.Errorf("exceeded maximum cycle count (%d)", vm.MaxCycles)
		}
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step decodes and executes a single instruction at PC.
func (vm *VM) Step() error {
	instruction := vm.Memory.At(vm.CPU.PC)
	vm.CPU.PC++
	vm.CPU.Cycles++

	x := signExtend12(instruction & 0x0FFF)

	switch instruction & 0xF000 {
	case opLoad:
		vm.CPU.R = vm.Memory.At(x)
	case opStore:
		vm.Memory.Set(x, vm.CPU.R)
	case opClear:
		vm.Memory.Set(x, 0)
	case opAdd:
		vm.CPU.R += vm.Memory.At(x)
	case opIncrement:
		vm.Memory.Set(x, vm.Memory.At(x)+1)
	case opSubtract:
		vm.CPU.R -= vm.Memory.At(x)
	case opDecrement:
		vm.Memory.Set(x, vm.Memory.At(x)-1)
	case opCompare:
		vm.CPU.Codes.Compare(vm.Memory.At(x), vm.CPU.R)
	case opJump:
		vm.CPU.PC = x
	case opJumpGT:
		if vm.CPU.Codes.GT {
			vm.CPU.PC = x
		}
	case opJumpEQ:
		if vm.CPU.Codes.EQ {
			vm.CPU.PC = x
		}
	case opJumpLT:
		if vm.CPU.Codes.LT {
			vm.CPU.PC = x
		}
	case opJumpNEQ:
		if !vm.CPU.Codes.EQ {
			vm.CPU.PC = x
		}
	case opIn:
		value, err := vm.readInt()
		if err != nil {
			return err
		}
		vm.Memory.Set(x, uint16(value))
	case opOut:
		fmt.Fprintf(vm.Output, "(Output        ) => %d\n", int16(vm.Memory.At(x)))
	case opHalt:
		vm.CPU.Halted = true
	}
	return nil
}

// signExtend12 sign-extends the low 12 bits of field to a full 16-bit
// word, the operand's use as a signed memory address or jump target.
func signExtend12(field uint16) uint16 {
	if field&0x0800 != 0 {
		return field | 0xF000
	}
	return field
}

// readInt prompts on Output and reads a line from stdin, re-prompting on
// parse failure rather than erroring out.
func (vm *VM) readInt() (int16, error) {
	prompt := "(Input a number) => "
	for {
		fmt.Fprint(vm.Output, prompt)
		line, err := vm.stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("reading input: %w", err)
		}

		value, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 16)
		if perr == nil {
			return int16(value), nil
		}
		prompt = "(INVALID! Input a number) => "
	}
}
