// Package chip8 provides CHIP-8 instruction identification and assembly
// text formatting for the interpreter.
//
// # Instruction Set
//
// CHIP-8 has a simple instruction set with 35 opcodes:
//   - All instructions are 2 bytes (16 bits), stored big endian
//   - Instructions use direct addressing with 12-bit addresses
//   - 16 general-purpose 8-bit registers (V0-VF)
//   - Special-purpose registers: I (16-bit), PC, SP
//
// Opcodes are identified using the opcode table of the retrogolib CHIP-8
// package, grouped by the first nibble of the opcode.
//
// # Usage
//
// The emulator uses this package when tracing execution and to detect
// programs that ended in a jump to themselves:
//
//	ins, ok := chip8.Decode(opcode)
//	if !ok {
//		return fmt.Errorf("unknown opcode %04X", opcode)
//	}
//	logger.Debug("Executing", log.String("instruction", ins.String()))
//
// # Supported Operations
//
//   - Flow control: JP, CALL, RET
//   - Arithmetic: ADD, SUB, SUBN, OR, AND, XOR, SHR, SHL
//   - Memory: LD (load/store operations)
//   - Graphics: CLS, DRW
//   - Input: SKP, SKNP (skip on key press/release)
//   - Timers and sound operations
package chip8
