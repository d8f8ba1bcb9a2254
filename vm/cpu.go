// Package vm implements the simulator (S): a register-decode-execute loop
// over the sixteen opcodes the assembler emits.
package vm

// Memory is the machine's 16-bit address space: every opcode's 12-bit
// operand field indexes directly into it after sign-extension.
type Memory [0x10000]uint16

// At returns the word stored at addr.
func (m *Memory) At(addr uint16) uint16 { return m[addr] }

// Set stores value at addr.
func (m *Memory) Set(addr uint16, value uint16) { m[addr] = value }

// Load copies words into memory starting at address 0, the layout an
// .obj file produces.
func (m *Memory) Load(words []uint16) {
	copy(m[:], words)
}

// ConditionCodes holds the three flags COMPARE sets and the four
// conditional jumps read. The comparison is unsigned, matching the
// 16-bit word comparison the instruction operates on.
type ConditionCodes struct {
	GT bool
	EQ bool
	LT bool
}

// Compare sets codes from comparing con against r (both raw 16-bit
// words, compared as unsigned).
func (c *ConditionCodes) Compare(con, r uint16) {
	c.GT = con > r
	c.EQ = con == r
	c.LT = con < r
}

// CPU is the machine's register file: a single accumulator R, a program
// counter, the condition-code flags, and a halted latch.
type CPU struct {
	R      uint16
	PC     uint16
	Halted bool
	Codes  ConditionCodes

	// Cycles counts instructions executed, for the simulator's
	// runaway-program guard (config.Simulator.MaxCycles).
	Cycles uint64
}

// NewCPU returns a CPU in its reset state: R=0, PC=0, not halted,
// condition codes all false.
func NewCPU() *CPU {
	return &CPU{}
}
