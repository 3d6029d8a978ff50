package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is matched by every UnknownOpcodeError.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackOverflow is matched by every StackOverflowError.
	ErrStackOverflow = errors.New("stack overflow")
)

// UnknownOpcodeError is returned by Tick when the fetched opcode matches
// no instruction. No state was modified by the failing tick.
type UnknownOpcodeError struct {
	Opcode uint16
	PC     uint16 // address the opcode was fetched from
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at address %03X", e.Opcode, e.PC)
}

// Is reports whether the target is ErrUnknownOpcode.
func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

// StackOverflowError is returned by a subroutine call when the configured
// stack limit is reached. The return address was not pushed.
type StackOverflowError struct {
	PC    uint16 // address of the call instruction
	Depth int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow at address %03X, depth %d reached", e.PC, e.Depth)
}

// Is reports whether the target is ErrStackOverflow.
func (e *StackOverflowError) Is(target error) bool {
	return target == ErrStackOverflow
}
