package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded CHIP-8 instruction. It bridges the retrogolib
// CHIP-8 instruction definitions and the encoded opcode parameters.
type Instruction struct {
	ins    *chip8.Instruction
	opcode uint16
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.CallInst
}

// IsNil returns true if the instruction is nil.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// Opcode returns the encoded instruction.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// IsJump returns true if the instruction is an absolute jump (1NNN).
// The indexed jump BNNN is not included as its target depends on V0.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.JpInst && i.opcode&0xF000 == 0x1000
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.RetInst
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// Target returns the destination address of jump and call instructions.
func (i Instruction) Target() (uint16, bool) {
	if !i.IsJump() && !i.IsCall() {
		return 0, false
	}
	return i.opcode & 0x0FFF, true
}

// String returns the instruction formatted as assembly text.
func (i Instruction) String() string {
	name := i.Name()
	if name == "" {
		return formatDataWord(i.opcode)
	}
	if params := formatInstruction(name, i.opcode); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}
