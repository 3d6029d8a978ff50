package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Decode identifies the instruction of the opcode.
// It returns false if the opcode does not match any known instruction.
func Decode(opcode uint16) (Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	opcodes := chip8.Opcodes[int(firstNibble)]

	for _, op := range opcodes {
		if op.Info.Mask&opcode == op.Info.Value {
			return Instruction{
				ins:    op.Instruction,
				opcode: opcode,
			}, true
		}
	}
	return Instruction{}, false
}

// Disassemble returns the assembly text of the opcode. Unknown opcodes
// are returned as a data word.
func Disassemble(opcode uint16) string {
	ins, ok := Decode(opcode)
	if !ok {
		return formatDataWord(opcode)
	}
	return ins.String()
}
