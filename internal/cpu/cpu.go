// Package cpu implements the CHIP-8 instruction decode and execute engine.
//
// The CPU owns the registers V0-VF, the address register I, the program
// counter, the call stack and the delay and sound timers. Memory, display
// and input are provided by the caller. A Tick executes exactly one
// instruction, AdvanceTimers is called once per frame.
//
// All address registers are held in 12 bits: PC and I wrap around at
// 0xFFF, matching the memory address masking.
package cpu

import (
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/quirks"
)

const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// ProgramStart is the initial program counter.
	ProgramStart = 0x200

	// flagRegister is the index of VF.
	flagRegister = 0xF

	// spriteWidth is the fixed pixel width of a sprite row.
	spriteWidth = 8
)

// Result describes how a tick ended when it did not fail.
type Result uint8

const (
	// ResultContinue means the instruction completed.
	ResultContinue Result = iota
	// ResultWaitKey means FX0A found no released key and rewound the
	// program counter to execute again on the next tick.
	ResultWaitKey
	// ResultVBlank means a sprite was drawn with the display wait quirk
	// enabled and the remaining ticks of the frame should be skipped.
	ResultVBlank
)

func (r Result) String() string {
	switch r {
	case ResultContinue:
		return "continue"
	case ResultWaitKey:
		return "wait key"
	case ResultVBlank:
		return "vblank"
	default:
		return "unknown"
	}
}

// Options configures a CPU.
type Options struct {
	Quirks quirks.Quirks

	// StackLimit is the maximum call stack depth, 0 disables the limit.
	StackLimit int

	// Random is the source for the random instruction, a randomly seeded
	// source is used if nil.
	Random RandomSource
}

// State is a snapshot of the CPU registers for diagnostics.
type State struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
}

// CPU is the CHIP-8 interpreter.
type CPU struct {
	mem     *memory.Memory
	display display.Display
	input   input.Input

	quirks     quirks.Quirks
	stackLimit int
	random     RandomSource

	v     [RegisterCount]uint8
	i     uint16
	pc    uint16
	stack []uint16

	delayTimer uint8
	soundTimer uint8

	drawFlag bool
}

// New returns a CPU in the reset state.
func New(mem *memory.Memory, disp display.Display, in input.Input, opts Options) *CPU {
	c := &CPU{
		mem:        mem,
		display:    disp,
		input:      in,
		quirks:     opts.Quirks,
		stackLimit: opts.StackLimit,
		random:     opts.Random,
	}
	if c.random == nil {
		c.random = NewRandomSource(0)
	}
	c.Reset()
	return c
}

// Reset clears all registers, the stack and the timers and sets the
// program counter to the program start.
func (c *CPU) Reset() {
	c.v = [RegisterCount]uint8{}
	c.i = 0
	c.pc = ProgramStart
	c.stack = c.stack[:0]
	c.delayTimer = 0
	c.soundTimer = 0
	c.drawFlag = false
}

// Tick fetches, decodes and executes a single instruction.
// An unknown opcode fails before any state is changed.
func (c *CPU) Tick() (Result, error) {
	pc := c.pc
	opcode := c.Opcode()

	ins, ok := decode(opcode)
	if !ok {
		return ResultContinue, &UnknownOpcodeError{Opcode: opcode, PC: pc}
	}

	c.pc = (pc + 2) & memory.AddressMask

	result, err := c.execute(ins.kind, decodeOperands(opcode))
	if err != nil {
		c.pc = pc
		return ResultContinue, err
	}
	return result, nil
}

// AdvanceTimers decrements the delay and sound timers if they are not zero.
func (c *CPU) AdvanceTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// Opcode returns the opcode at the current program counter.
func (c *CPU) Opcode() uint16 {
	return uint16(c.mem.Read(c.pc))<<8 | uint16(c.mem.Read(c.pc+1))
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// I returns the address register.
func (c *CPU) I() uint16 {
	return c.i
}

// Register returns the value of register VX, only the low nibble of x is used.
func (c *CPU) Register(x uint8) uint8 {
	return c.v[x&0x0F]
}

// DelayTimer returns the delay timer.
func (c *CPU) DelayTimer() uint8 {
	return c.delayTimer
}

// SoundTimer returns the sound timer.
func (c *CPU) SoundTimer() uint8 {
	return c.soundTimer
}

// StackDepth returns the number of return addresses on the stack.
func (c *CPU) StackDepth() int {
	return len(c.stack)
}

// DrawFlag returns whether the display changed since the flag was last cleared.
func (c *CPU) DrawFlag() bool {
	return c.drawFlag
}

// ClearDrawFlag resets the draw flag, called once per frame by the orchestrator.
func (c *CPU) ClearDrawFlag() {
	c.drawFlag = false
}

// Quirks returns the quirks the CPU was created with.
func (c *CPU) Quirks() quirks.Quirks {
	return c.quirks
}

// State returns a copy of the CPU registers.
func (c *CPU) State() State {
	stack := make([]uint16, len(c.stack))
	copy(stack, c.stack)

	return State{
		V:          c.v,
		I:          c.i,
		PC:         c.pc,
		Stack:      stack,
		DelayTimer: c.delayTimer,
		SoundTimer: c.soundTimer,
	}
}
