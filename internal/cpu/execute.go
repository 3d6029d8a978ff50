package cpu

import (
	"github.com/retroenv/retrochip8/internal/font"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/memory"
)

// execute runs the decoded instruction. The program counter already
// points to the next instruction.
//
//nolint:funlen,cyclop,gocyclo // one case per instruction family
func (c *CPU) execute(k kind, op operands) (Result, error) {
	switch k {
	case kindCls:
		c.display.Clear()
		c.drawFlag = true

	case kindRet:
		if n := len(c.stack); n > 0 {
			c.pc = c.stack[n-1]
			c.stack = c.stack[:n-1]
		}

	case kindSys:
		// machine code routines of the host are not supported

	case kindJump:
		c.pc = op.nnn

	case kindCall:
		if c.stackLimit > 0 && len(c.stack) >= c.stackLimit {
			return ResultContinue, &StackOverflowError{
				PC:    (c.pc - 2) & memory.AddressMask,
				Depth: len(c.stack),
			}
		}
		c.stack = append(c.stack, c.pc)
		c.pc = op.nnn

	case kindSkipEqualByte:
		c.skipIf(c.v[op.x] == op.nn)

	case kindSkipNotEqualByte:
		c.skipIf(c.v[op.x] != op.nn)

	case kindSkipEqualRegister:
		c.skipIf(c.v[op.x] == c.v[op.y])

	case kindSkipNotEqualRegister:
		c.skipIf(c.v[op.x] != c.v[op.y])

	case kindLoadByte:
		c.v[op.x] = op.nn

	case kindAddByte:
		c.v[op.x] += op.nn

	case kindLoadRegister:
		c.v[op.x] = c.v[op.y]

	case kindOr:
		c.v[op.x] |= c.v[op.y]
		c.resetFlag()

	case kindAnd:
		c.v[op.x] &= c.v[op.y]
		c.resetFlag()

	case kindXor:
		c.v[op.x] ^= c.v[op.y]
		c.resetFlag()

	case kindAdd:
		sum := uint16(c.v[op.x]) + uint16(c.v[op.y])
		c.v[op.x] = uint8(sum)
		c.setFlag(sum > 0xFF)

	case kindSub:
		noBorrow := c.v[op.x] >= c.v[op.y]
		c.v[op.x] -= c.v[op.y]
		c.setFlag(noBorrow)

	case kindSubReverse:
		noBorrow := c.v[op.y] >= c.v[op.x]
		c.v[op.x] = c.v[op.y] - c.v[op.x]
		c.setFlag(noBorrow)

	case kindShiftRight:
		value := c.shiftOperand(op)
		c.v[op.x] = value >> 1
		c.setFlag(value&0x01 != 0)

	case kindShiftLeft:
		value := c.shiftOperand(op)
		c.v[op.x] = value << 1
		c.setFlag(value&0x80 != 0)

	case kindLoadIndex:
		c.i = op.nnn

	case kindJumpOffset:
		c.pc = (uint16(c.v[0]) + op.nnn) & memory.AddressMask

	case kindRandom:
		c.v[op.x] = c.random.NextByte() & op.nn

	case kindDraw:
		c.draw(op)
		if c.quirks.DisplayWait {
			return ResultVBlank, nil
		}

	case kindSkipKeyDown:
		c.skipIf(c.keyHeld(op.x))

	case kindSkipKeyUp:
		c.skipIf(!c.keyHeld(op.x))

	case kindLoadDelay:
		c.v[op.x] = c.delayTimer

	case kindWaitKey:
		return c.waitKey(op), nil

	case kindSetDelay:
		c.delayTimer = c.v[op.x]

	case kindSetSound:
		c.soundTimer = c.v[op.x]

	case kindAddIndex:
		c.i = (c.i + uint16(c.v[op.x])) & memory.AddressMask

	case kindLoadFont:
		c.i = font.Address(c.v[op.x]) & memory.AddressMask

	case kindStoreBCD:
		value := c.v[op.x]
		c.mem.Write(c.i, value/100)
		c.mem.Write(c.i+1, (value/10)%10)
		c.mem.Write(c.i+2, value%10)

	case kindStoreRegisters:
		for reg := range uint16(op.x) + 1 {
			c.mem.Write(c.i+reg, c.v[reg])
		}
		c.incrementIndex(op)

	case kindLoadRegisters:
		for reg := range uint16(op.x) + 1 {
			c.v[reg] = c.mem.Read(c.i + reg)
		}
		c.incrementIndex(op)
	}

	return ResultContinue, nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc = (c.pc + 2) & memory.AddressMask
	}
}

// keyHeld returns whether the key stored in VX is held, only the low
// nibble of VX selects the key.
func (c *CPU) keyHeld(x uint8) bool {
	return c.input.KeyState(c.v[x]&0x0F).IsHeld()
}

// setFlag writes the carry or borrow flag to VF. It has to be the last
// write of an instruction so that VF as destination register ends up
// holding the flag.
func (c *CPU) setFlag(set bool) {
	if set {
		c.v[flagRegister] = 1
	} else {
		c.v[flagRegister] = 0
	}
}

// resetFlag clears VF after a logic instruction if the quirk is enabled.
func (c *CPU) resetFlag() {
	if c.quirks.VFReset {
		c.v[flagRegister] = 0
	}
}

// shiftOperand returns the value to shift, VY is copied into VX first
// if the shifting quirk is enabled.
func (c *CPU) shiftOperand(op operands) uint8 {
	if c.quirks.Shifting {
		c.v[op.x] = c.v[op.y]
	}
	return c.v[op.x]
}

// incrementIndex advances I past the stored or loaded registers if the
// save load quirk is enabled.
func (c *CPU) incrementIndex(op operands) {
	if c.quirks.SaveLoadIncrement {
		c.i = (c.i + uint16(op.x) + 1) & memory.AddressMask
	}
}

// waitKey stores the first key released since the last input update in VX.
// Without a released key the program counter is rewound so that the
// instruction executes again.
func (c *CPU) waitKey(op operands) Result {
	for key := range uint8(input.KeyCount) {
		if c.input.KeyState(key) == input.Released {
			c.v[op.x] = key
			return ResultContinue
		}
	}

	c.pc = (c.pc - 2) & memory.AddressMask
	return ResultWaitKey
}
