package cpu

// kind identifies an instruction family after decoding.
type kind uint8

const (
	kindCls kind = iota + 1
	kindRet
	kindSys
	kindJump
	kindCall
	kindSkipEqualByte
	kindSkipNotEqualByte
	kindSkipEqualRegister
	kindLoadByte
	kindAddByte
	kindLoadRegister
	kindOr
	kindAnd
	kindXor
	kindAdd
	kindSub
	kindShiftRight
	kindSubReverse
	kindShiftLeft
	kindSkipNotEqualRegister
	kindLoadIndex
	kindJumpOffset
	kindRandom
	kindDraw
	kindSkipKeyDown
	kindSkipKeyUp
	kindLoadDelay
	kindWaitKey
	kindSetDelay
	kindSetSound
	kindAddIndex
	kindLoadFont
	kindStoreBCD
	kindStoreRegisters
	kindLoadRegisters
)

// instruction describes an instruction family. An opcode matches when
// opcode & mask == code.
type instruction struct {
	mask uint16
	code uint16
	kind kind
	name string // opcode pattern, used as description in errors and tests
}

// instructions is the dispatch table. The first matching entry wins.
// The masks are mutually exclusive with one exception: 00E0 and 00EE
// have to be registered before the 0NNN machine code routine call.
var instructions = []instruction{
	{mask: 0xFFFF, code: 0x00E0, kind: kindCls, name: "00E0"},
	{mask: 0xFFFF, code: 0x00EE, kind: kindRet, name: "00EE"},
	{mask: 0xF000, code: 0x0000, kind: kindSys, name: "0NNN"},
	{mask: 0xF000, code: 0x1000, kind: kindJump, name: "1NNN"},
	{mask: 0xF000, code: 0x2000, kind: kindCall, name: "2NNN"},
	{mask: 0xF000, code: 0x3000, kind: kindSkipEqualByte, name: "3XNN"},
	{mask: 0xF000, code: 0x4000, kind: kindSkipNotEqualByte, name: "4XNN"},
	{mask: 0xF00F, code: 0x5000, kind: kindSkipEqualRegister, name: "5XY0"},
	{mask: 0xF000, code: 0x6000, kind: kindLoadByte, name: "6XNN"},
	{mask: 0xF000, code: 0x7000, kind: kindAddByte, name: "7XNN"},
	{mask: 0xF00F, code: 0x8000, kind: kindLoadRegister, name: "8XY0"},
	{mask: 0xF00F, code: 0x8001, kind: kindOr, name: "8XY1"},
	{mask: 0xF00F, code: 0x8002, kind: kindAnd, name: "8XY2"},
	{mask: 0xF00F, code: 0x8003, kind: kindXor, name: "8XY3"},
	{mask: 0xF00F, code: 0x8004, kind: kindAdd, name: "8XY4"},
	{mask: 0xF00F, code: 0x8005, kind: kindSub, name: "8XY5"},
	{mask: 0xF00F, code: 0x8006, kind: kindShiftRight, name: "8XY6"},
	{mask: 0xF00F, code: 0x8007, kind: kindSubReverse, name: "8XY7"},
	{mask: 0xF00F, code: 0x800E, kind: kindShiftLeft, name: "8XYE"},
	{mask: 0xF00F, code: 0x9000, kind: kindSkipNotEqualRegister, name: "9XY0"},
	{mask: 0xF000, code: 0xA000, kind: kindLoadIndex, name: "ANNN"},
	{mask: 0xF000, code: 0xB000, kind: kindJumpOffset, name: "BNNN"},
	{mask: 0xF000, code: 0xC000, kind: kindRandom, name: "CXNN"},
	{mask: 0xF000, code: 0xD000, kind: kindDraw, name: "DXYN"},
	{mask: 0xF0FF, code: 0xE09E, kind: kindSkipKeyDown, name: "EX9E"},
	{mask: 0xF0FF, code: 0xE0A1, kind: kindSkipKeyUp, name: "EXA1"},
	{mask: 0xF0FF, code: 0xF007, kind: kindLoadDelay, name: "FX07"},
	{mask: 0xF0FF, code: 0xF00A, kind: kindWaitKey, name: "FX0A"},
	{mask: 0xF0FF, code: 0xF015, kind: kindSetDelay, name: "FX15"},
	{mask: 0xF0FF, code: 0xF018, kind: kindSetSound, name: "FX18"},
	{mask: 0xF0FF, code: 0xF01E, kind: kindAddIndex, name: "FX1E"},
	{mask: 0xF0FF, code: 0xF029, kind: kindLoadFont, name: "FX29"},
	{mask: 0xF0FF, code: 0xF033, kind: kindStoreBCD, name: "FX33"},
	{mask: 0xF0FF, code: 0xF055, kind: kindStoreRegisters, name: "FX55"},
	{mask: 0xF0FF, code: 0xF065, kind: kindLoadRegisters, name: "FX65"},
}

// decode returns the first table entry matching the opcode.
func decode(opcode uint16) (instruction, bool) {
	for _, ins := range instructions {
		if opcode&ins.mask == ins.code {
			return ins, true
		}
	}
	return instruction{}, false
}

// operands contains the fields shared by all instruction encodings.
type operands struct {
	nnn uint16 // 12 bit address
	nn  uint8  // 8 bit constant
	n   uint8  // 4 bit constant
	x   uint8  // first register index
	y   uint8  // second register index
}

func decodeOperands(opcode uint16) operands {
	return operands{
		nnn: opcode & 0x0FFF,
		nn:  uint8(opcode & 0x00FF),
		n:   uint8(opcode & 0x000F),
		x:   uint8((opcode & 0x0F00) >> 8),
		y:   uint8((opcode & 0x00F0) >> 4),
	}
}
