package emulator

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// mockKeys returns the configured key states in order, repeating the last one.
type mockKeys struct {
	frames [][input.KeyCount]bool
	calls  int
}

func (m *mockKeys) HeldKeys() [input.KeyCount]bool {
	if len(m.frames) == 0 {
		return [input.KeyCount]bool{}
	}
	index := min(m.calls, len(m.frames)-1)
	m.calls++
	return m.frames[index]
}

type mockPresenter struct {
	presented int
	pixelsOn  int
}

func (m *mockPresenter) Present(disp display.Display) {
	m.presented++
	m.pixelsOn = 0
	for y := range disp.Height() {
		for x := range disp.Width() {
			if disp.IsPixelOn(x, y) {
				m.pixelsOn++
			}
		}
	}
}

type mockSpeaker struct {
	tones []bool
}

func (m *mockSpeaker) SetTone(on bool) {
	m.tones = append(m.tones, on)
}

// newTestEmulator creates an emulator with the given opcodes loaded as ROM.
func newTestEmulator(t *testing.T, opts options.Emulator, program ...uint16) *Emulator {
	t.Helper()

	e, err := New(log.NewTestLogger(t), opts)
	if err != nil {
		t.Fatalf("creating emulator: %v", err)
	}

	rom := make([]byte, 0, 2*len(program))
	for _, opcode := range program {
		rom = append(rom, uint8(opcode>>8), uint8(opcode))
	}
	if err := e.LoadROM(rom); err != nil {
		t.Fatalf("loading ROM: %v", err)
	}
	return e
}

// heldKey returns a key state with only the given key held.
func heldKey(key int) [input.KeyCount]bool {
	var held [input.KeyCount]bool
	held[key] = true
	return held
}
