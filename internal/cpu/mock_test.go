package cpu

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/quirks"
)

// mockInput returns fixed key states.
type mockInput struct {
	states [input.KeyCount]input.KeyState
}

func (m *mockInput) KeyState(key uint8) input.KeyState {
	if int(key) >= input.KeyCount {
		return input.None
	}
	return m.states[key]
}

// mockRandom returns the configured bytes in order, repeating the last one.
type mockRandom struct {
	values []uint8
	calls  int
}

func (m *mockRandom) NextByte() uint8 {
	index := min(m.calls, len(m.values)-1)
	m.calls++
	return m.values[index]
}

type testMachine struct {
	cpu     *CPU
	mem     *memory.Memory
	display *display.Buffer
	input   *mockInput
	random  *mockRandom
}

// newTestMachine creates a CPU with the given opcodes loaded at the program start.
func newTestMachine(t *testing.T, q quirks.Quirks, program ...uint16) *testMachine {
	t.Helper()

	m := &testMachine{
		mem:     memory.New(),
		display: display.NewDefault(),
		input:   &mockInput{},
		random:  &mockRandom{values: []uint8{0xFF}},
	}
	m.cpu = New(m.mem, m.display, m.input, Options{
		Quirks: q,
		Random: m.random,
	})
	m.load(ProgramStart, program...)
	return m
}

// load writes the opcodes big endian to memory at the given address.
func (m *testMachine) load(address uint16, program ...uint16) {
	for i, opcode := range program {
		m.mem.Write(address+uint16(2*i), uint8(opcode>>8))
		m.mem.Write(address+uint16(2*i)+1, uint8(opcode))
	}
}

// run executes the given number of ticks and fails the test on an error.
func (m *testMachine) run(t *testing.T, ticks int) {
	t.Helper()

	for range ticks {
		if _, err := m.cpu.Tick(); err != nil {
			t.Fatalf("unexpected tick error: %v", err)
		}
	}
}
