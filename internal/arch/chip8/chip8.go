package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// formatInstruction formats a CHIP-8 instruction with its parameters.
// Returns the formatted parameter string for the given instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.ClsInst.Name, chip8.RetInst.Name:
		return "" // No parameters
	case chip8.JpInst.Name:
		return formatJumpInstruction(opcode)
	case chip8.CallInst.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeInst.Name, chip8.SneInst.Name:
		return formatCompareInstruction(opcode)
	case chip8.LdInst.Name:
		return formatLoadInstruction(opcode)
	case chip8.AddInst.Name:
		return formatAddInstruction(opcode)
	case chip8.OrInst.Name, chip8.AndInst.Name, chip8.XorInst.Name, chip8.SubInst.Name, chip8.SubnInst.Name:
		return formatBinaryInstruction(opcode)
	case chip8.ShrInst.Name, chip8.ShlInst.Name:
		return formatShiftInstruction(opcode)
	case chip8.RndInst.Name:
		return formatRandomInstruction(opcode)
	case chip8.DrwInst.Name:
		return formatDrawInstruction(opcode)
	case chip8.SkpInst.Name, chip8.SknpInst.Name:
		return formatSkipInstruction(opcode)
	}
	return ""
}

// formatJumpInstruction formats jump instructions (JP addr, JP V0+addr).
func formatJumpInstruction(opcode uint16) string {
	if opcode&0xF000 == 0x1000 {
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	}
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats comparison instructions (SE, SNE).
func formatCompareInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		y := extractRegisterY(opcode)
		return fmt.Sprintf("V%X, V%X", x, y)
	}
	return ""
}

// formatLoadInstruction formats load instructions (LD Vx, byte/Vy/I and
// the timer, key, font and memory block variants).
func formatLoadInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		y := extractRegisterY(opcode)
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatLoadSpecialInstruction(opcode, x)
	}
	return ""
}

// formatLoadSpecialInstruction formats the FXNN load instructions.
func formatLoadSpecialInstruction(opcode, x uint16) string {
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAddInstruction formats add instructions (ADD Vx, byte/Vy and ADD I, Vx).
func formatAddInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		y := extractRegisterY(opcode)
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// formatBinaryInstruction formats binary operation instructions (OR, AND, XOR, SUB, SUBN).
func formatBinaryInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	return fmt.Sprintf("V%X, V%X", x, y)
}

// formatShiftInstruction formats shift instructions (SHR, SHL).
func formatShiftInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	return fmt.Sprintf("V%X", x)
}

// formatRandomInstruction formats random number instructions (RND).
func formatRandomInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
}

// formatDrawInstruction formats draw instructions (DRW).
func formatDrawInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	n := opcode & 0x000F
	return fmt.Sprintf("V%X, V%X, $%X", x, y, n)
}

// formatSkipInstruction formats skip instructions (SKP, SKNP).
func formatSkipInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	return fmt.Sprintf("V%X", x)
}

// formatDataWord formats an opcode that is not an instruction.
func formatDataWord(opcode uint16) string {
	return fmt.Sprintf(".word $%04X", opcode)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
