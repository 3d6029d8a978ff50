package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // table of arithmetic cases
func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		wantVX uint8
		wantVF uint8
	}{
		{"add overflow", 0x8014, 0xFF, 0x01, 0x00, 1},
		{"add no overflow", 0x8014, 0x10, 0x20, 0x30, 0},
		{"add exactly 255", 0x8014, 0xFE, 0x01, 0xFF, 0},
		{"sub no borrow equal", 0x8015, 0x01, 0x01, 0x00, 1},
		{"sub borrow", 0x8015, 0x00, 0x01, 0xFF, 0},
		{"sub no borrow", 0x8015, 0x05, 0x03, 0x02, 1},
		{"reverse sub no borrow", 0x8017, 0x03, 0x05, 0x02, 1},
		{"reverse sub borrow", 0x8017, 0x05, 0x03, 0xFE, 0},
		{"reverse sub equal", 0x8017, 0x07, 0x07, 0x00, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, quirks.Quirks{}, tt.opcode)
			m.cpu.v[0] = tt.vx
			m.cpu.v[1] = tt.vy

			m.run(t, 1)
			assert.Equal(t, tt.wantVX, m.cpu.Register(0))
			assert.Equal(t, tt.wantVF, m.cpu.Register(0xF))
			assert.Equal(t, tt.vy, m.cpu.Register(1))
		})
	}
}

func TestExecute_FlagRegisterAsDestination(t *testing.T) {
	// the flag overwrites the result when VF is the destination
	m := newTestMachine(t, quirks.Quirks{}, 0x8F14, 0x8F15)
	m.cpu.v[0xF] = 0xFF
	m.cpu.v[1] = 0x01

	m.run(t, 1)
	assert.Equal(t, uint8(1), m.cpu.Register(0xF))

	m.run(t, 1)
	assert.Equal(t, uint8(1), m.cpu.Register(0xF))
}

func TestExecute_LoadAndAddByte(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0x6AF0, 0x7A20, 0x8BA0, 0xA123)
	m.cpu.v[0xF] = 0x55

	m.run(t, 4)
	assert.Equal(t, uint8(0x10), m.cpu.Register(0xA))
	assert.Equal(t, uint8(0x10), m.cpu.Register(0xB))
	assert.Equal(t, uint8(0x55), m.cpu.Register(0xF)) // 7XNN does not touch VF
	assert.Equal(t, uint16(0x123), m.cpu.I())
}

func TestExecute_Logic(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		vfReset bool
		wantVX  uint8
		wantVF  uint8
	}{
		{"or", 0x8011, false, 0b1110, 0x77},
		{"and", 0x8012, false, 0b1000, 0x77},
		{"xor", 0x8013, false, 0b0110, 0x77},
		{"or with vf reset", 0x8011, true, 0b1110, 0},
		{"and with vf reset", 0x8012, true, 0b1000, 0},
		{"xor with vf reset", 0x8013, true, 0b0110, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, quirks.Quirks{VFReset: tt.vfReset}, tt.opcode)
			m.cpu.v[0] = 0b1100
			m.cpu.v[1] = 0b1010
			m.cpu.v[0xF] = 0x77

			m.run(t, 1)
			assert.Equal(t, tt.wantVX, m.cpu.Register(0))
			assert.Equal(t, tt.wantVF, m.cpu.Register(0xF))
		})
	}
}

//nolint:funlen // table of shift cases
func TestExecute_Shift(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		shifting bool
		vx, vy   uint8
		wantVX   uint8
		wantVY   uint8
		wantVF   uint8
	}{
		{"right uses VX", 0x8016, false, 0b10000001, 0b00000010, 0b01000000, 0b00000010, 1},
		{"right uses VY", 0x8016, true, 0b10000001, 0b00000010, 0b00000001, 0b00000010, 0},
		{"right uses VY with carry", 0x8016, true, 0b00000000, 0b00000011, 0b00000001, 0b00000011, 1},
		{"left uses VX", 0x801E, false, 0b10000001, 0b00000001, 0b00000010, 0b00000001, 1},
		{"left uses VX without carry", 0x801E, false, 0b01000000, 0b10000000, 0b10000000, 0b10000000, 0},
		{"left uses VY", 0x801E, true, 0b00000001, 0b11000000, 0b10000000, 0b11000000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, quirks.Quirks{Shifting: tt.shifting}, tt.opcode)
			m.cpu.v[0] = tt.vx
			m.cpu.v[1] = tt.vy

			m.run(t, 1)
			assert.Equal(t, tt.wantVX, m.cpu.Register(0))
			assert.Equal(t, tt.wantVY, m.cpu.Register(1))
			assert.Equal(t, tt.wantVF, m.cpu.Register(0xF))
		})
	}
}

func TestExecute_JumpCallReturn(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0x2300)
	m.load(0x300, 0x1400)
	m.load(0x400, 0x00EE)

	m.run(t, 1)
	assert.Equal(t, uint16(0x300), m.cpu.PC())
	assert.Equal(t, 1, m.cpu.StackDepth())

	m.run(t, 1)
	assert.Equal(t, uint16(0x400), m.cpu.PC())

	m.run(t, 1)
	assert.Equal(t, uint16(0x202), m.cpu.PC())
	assert.Equal(t, 0, m.cpu.StackDepth())
}

func TestExecute_ReturnOnEmptyStack(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0x00EE)

	result, err := m.cpu.Tick()
	assert.NoError(t, err)
	assert.Equal(t, ResultContinue, result)
	assert.Equal(t, uint16(0x202), m.cpu.PC())
}

func TestExecute_MachineCodeCallIsIgnored(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0x0123)

	m.run(t, 1)
	assert.Equal(t, uint16(0x202), m.cpu.PC())
	assert.Equal(t, 0, m.cpu.StackDepth())
}

func TestExecute_StackLimit(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0x2200)
	m.cpu.stackLimit = 2

	m.run(t, 2)
	assert.Equal(t, 2, m.cpu.StackDepth())

	_, err := m.cpu.Tick()
	assert.True(t, errors.Is(err, ErrStackOverflow))

	var stackErr *StackOverflowError
	assert.True(t, errors.As(err, &stackErr))
	assert.Equal(t, uint16(0x200), stackErr.PC)
	assert.Equal(t, 2, stackErr.Depth)
	assert.Equal(t, 2, m.cpu.StackDepth())
	assert.Equal(t, uint16(0x200), m.cpu.PC())
}

func TestExecute_Skips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		skip   bool
	}{
		{"3XNN equal", 0x3042, 0x42, 0, true},
		{"3XNN not equal", 0x3042, 0x41, 0, false},
		{"4XNN not equal", 0x4042, 0x41, 0, true},
		{"4XNN equal", 0x4042, 0x42, 0, false},
		{"5XY0 equal", 0x5010, 0x07, 0x07, true},
		{"5XY0 not equal", 0x5010, 0x07, 0x08, false},
		{"9XY0 not equal", 0x9010, 0x07, 0x08, true},
		{"9XY0 equal", 0x9010, 0x07, 0x07, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, quirks.Quirks{}, tt.opcode)
			m.cpu.v[0] = tt.vx
			m.cpu.v[1] = tt.vy

			m.run(t, 1)
			expected := uint16(0x202)
			if tt.skip {
				expected = 0x204
			}
			assert.Equal(t, expected, m.cpu.PC())
		})
	}
}

func TestExecute_KeySkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		state  input.KeyState
		skip   bool
	}{
		{"EX9E pressed", 0xE09E, input.Pressed, true},
		{"EX9E down", 0xE09E, input.Down, true},
		{"EX9E released", 0xE09E, input.Released, false},
		{"EX9E none", 0xE09E, input.None, false},
		{"EXA1 pressed", 0xE0A1, input.Pressed, false},
		{"EXA1 down", 0xE0A1, input.Down, false},
		{"EXA1 released", 0xE0A1, input.Released, true},
		{"EXA1 none", 0xE0A1, input.None, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, quirks.Quirks{}, tt.opcode)
			m.cpu.v[0] = 0xB
			m.input.states[0xB] = tt.state

			m.run(t, 1)
			expected := uint16(0x202)
			if tt.skip {
				expected = 0x204
			}
			assert.Equal(t, expected, m.cpu.PC())
		})
	}
}

func TestExecute_JumpOffset(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xB300)
	m.cpu.v[0] = 0x10

	m.run(t, 1)
	assert.Equal(t, uint16(0x310), m.cpu.PC())
}

func TestExecute_JumpOffsetWraps(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xBFFF)
	m.cpu.v[0] = 0xFF

	m.run(t, 1)
	assert.Equal(t, uint16(0x0FE), m.cpu.PC())
}

func TestExecute_Random(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xC30F, 0xC4F0)
	m.random.values = []uint8{0xAB, 0xCD}

	m.run(t, 2)
	assert.Equal(t, uint8(0x0B), m.cpu.Register(3))
	assert.Equal(t, uint8(0xC0), m.cpu.Register(4))
	assert.Equal(t, 2, m.random.calls)
}

func TestExecute_Timers(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xF015, 0xF118, 0xF207)
	m.cpu.v[0] = 30
	m.cpu.v[1] = 20

	m.run(t, 2)
	assert.Equal(t, uint8(30), m.cpu.DelayTimer())
	assert.Equal(t, uint8(20), m.cpu.SoundTimer())

	m.cpu.AdvanceTimers()
	m.run(t, 1)
	assert.Equal(t, uint8(29), m.cpu.Register(2))
}

func TestExecute_WaitKey(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xF50A)
	m.input.states[0x2] = input.Down

	for range 3 {
		result, err := m.cpu.Tick()
		assert.NoError(t, err)
		assert.Equal(t, ResultWaitKey, result)
		assert.Equal(t, uint16(0x200), m.cpu.PC())
	}

	m.input.states[0x2] = input.Released
	m.input.states[0x9] = input.Released

	result, err := m.cpu.Tick()
	assert.NoError(t, err)
	assert.Equal(t, ResultContinue, result)
	assert.Equal(t, uint8(0x2), m.cpu.Register(5))
	assert.Equal(t, uint16(0x202), m.cpu.PC())
}

func TestExecute_AddIndex(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xA100, 0xF01E, 0xAFFF, 0xF11E)
	m.cpu.v[0] = 0x20
	m.cpu.v[1] = 0x02
	m.cpu.v[0xF] = 0x33

	m.run(t, 2)
	assert.Equal(t, uint16(0x120), m.cpu.I())

	m.run(t, 2)
	assert.Equal(t, uint16(0x001), m.cpu.I())
	assert.Equal(t, uint8(0x33), m.cpu.Register(0xF))
}

func TestExecute_LoadFont(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xF029)
	m.cpu.v[0] = 0xA

	m.run(t, 1)
	assert.Equal(t, uint16(0x050+0xA*5), m.cpu.I())
}

func TestExecute_StoreBCD(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{}, 0xA300, 0xF033)
	m.cpu.v[0] = 254

	m.run(t, 2)
	assert.Equal(t, byte(2), m.mem.Read(0x300))
	assert.Equal(t, byte(5), m.mem.Read(0x301))
	assert.Equal(t, byte(4), m.mem.Read(0x302))
	assert.Equal(t, uint16(0x300), m.cpu.I())
}

func TestExecute_StoreLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		increment bool
		wantI     uint16
	}{
		{"without increment", false, 0x300},
		{"with increment", true, 0x304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, quirks.Quirks{SaveLoadIncrement: tt.increment},
				0xA300, 0xF355, 0xA300, 0xF365)
			registers := []uint8{0x12, 0x34, 0x56, 0x78}
			copy(m.cpu.v[:], registers)
			m.cpu.v[4] = 0x9A

			m.run(t, 2)
			assert.Equal(t, tt.wantI, m.cpu.I())
			for i, value := range registers {
				assert.Equal(t, value, m.mem.Read(0x300+uint16(i)))
			}
			assert.Equal(t, byte(0), m.mem.Read(0x304))

			m.cpu.v = [RegisterCount]uint8{}
			m.run(t, 2)
			assert.Equal(t, tt.wantI, m.cpu.I())
			for i, value := range registers {
				assert.Equal(t, value, m.cpu.Register(uint8(i)))
			}
			assert.Equal(t, uint8(0), m.cpu.Register(4))
		})
	}
}

func TestExecute_StoreWrapsAddress(t *testing.T) {
	m := newTestMachine(t, quirks.Quirks{SaveLoadIncrement: true}, 0xAFFF, 0xF155)
	m.cpu.v[0] = 0x11
	m.cpu.v[1] = 0x22

	m.run(t, 2)
	assert.Equal(t, byte(0x11), m.mem.Read(0xFFF))
	assert.Equal(t, byte(0x22), m.mem.Read(0x000))
	assert.Equal(t, uint16(0x001), m.cpu.I())
}
