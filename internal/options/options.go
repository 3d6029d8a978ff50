// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrochip8/internal/quirks"
)

// DefaultCyclesPerFrame is the number of instructions executed per 60 Hz frame.
const DefaultCyclesPerFrame = 60

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"ROM file to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Quirks      string `flag:"quirks" usage:"quirks preset: chip8, modern, none" default:"chip8"`
	Frames      int    `flag:"frames" usage:"number of 60 Hz frames to run" default:"600"`
	Cycles      int    `flag:"cycles" usage:"instructions executed per frame" default:"60"`
	StackLimit  int    `flag:"stack" usage:"maximum call stack depth (0: unlimited)"`
	Seed        uint64 `flag:"seed" usage:"seed of the random number generator (0: random)"`
	Breakpoints string `flag:"break" usage:"comma separated breakpoint addresses (e.g. 0x200,0x2A4)"`
	StopOnLoop  bool   `flag:"stop-on-loop" usage:"stop when the program jumps to itself"`
	Trace       bool   `flag:"trace" usage:"log every executed instruction (requires -debug)"`
	Dump        bool   `flag:"dump" usage:"print the display after the last frame"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// QuirkFlags contains the individual quirk overrides of the preset.
// Only flags that were explicitly passed are applied.
type QuirkFlags struct {
	Overrides map[string]bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	QuirkFlags
}

// Emulator defines options to control the interpreter core.
type Emulator struct {
	Quirks         quirks.Quirks
	CyclesPerFrame int
	StackLimit     int      // maximum call depth, 0 is unlimited
	Seed           uint64   // random source seed, 0 seeds randomly
	Breakpoints    []uint16 // addresses that stop execution before the instruction
	StopOnLoop     bool     // stop on a jump to its own address
	Trace          bool
}

// NewEmulator returns a new options instance with default options.
func NewEmulator() Emulator {
	return Emulator{
		Quirks:         quirks.Chip8(),
		CyclesPerFrame: DefaultCyclesPerFrame,
	}
}
