package emulator

import (
	"errors"
	"fmt"
)

var (
	// ErrBreakpoint is matched by every BreakpointError.
	ErrBreakpoint = errors.New("breakpoint reached")
	// ErrHalted is returned when the program jumps to its own address and
	// stopping on such loops is enabled.
	ErrHalted = errors.New("program halted")
	// ErrInvalidROM is returned for ROMs that are empty or do not fit into memory.
	ErrInvalidROM = errors.New("invalid ROM")
)

// BreakpointError is returned when execution reaches a configured
// breakpoint address. The instruction at the address was not executed,
// the next frame resumes with it.
type BreakpointError struct {
	PC uint16
}

func (e *BreakpointError) Error() string {
	return fmt.Sprintf("breakpoint reached at address %03X", e.PC)
}

// Is reports whether the target is ErrBreakpoint.
func (e *BreakpointError) Is(target error) bool {
	return target == ErrBreakpoint
}
