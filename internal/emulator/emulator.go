// Package emulator implements the frame orchestrator of the CHIP-8 interpreter.
//
// An Emulator owns the memory, display buffer, keypad and CPU of one
// machine. Each call of RunFrame corresponds to one 60 Hz frame: the keypad
// is updated once, up to CyclesPerFrame instructions are executed and the
// timers are advanced once.
package emulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/font"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// MaxROMSize is the largest ROM that fits between the program start and
// the end of memory.
const MaxROMSize = memory.Size - cpu.ProgramStart

// KeySource provides the keys currently held by the host.
type KeySource interface {
	HeldKeys() [input.KeyCount]bool
}

// Presenter shows the display after a frame that changed it.
type Presenter interface {
	Present(disp display.Display)
}

// Speaker plays the tone while the sound timer is active.
type Speaker interface {
	SetTone(on bool)
}

// Dependencies contains the optional host collaborators.
type Dependencies struct {
	Keys      KeySource
	Presenter Presenter
	Speaker   Speaker
}

// Frame describes the outcome of one frame.
type Frame struct {
	Cycles int  // instructions executed
	Draw   bool // display changed
	Sound  bool // sound timer active
}

// Emulator runs a CHIP-8 program frame by frame.
type Emulator struct {
	logger  *log.Logger
	options options.Emulator

	mem     *memory.Memory
	display *display.Buffer
	keypad  *input.Keypad
	cpu     *cpu.CPU

	keys      KeySource
	presenter Presenter
	speaker   Speaker

	breakpoints set.Set[uint16]
	resumeAt    uint16 // breakpoint address to execute on the next tick
	resuming    bool

	frames uint64
}

// New returns a new emulator with an empty program loaded.
func New(logger *log.Logger, opts options.Emulator) (*Emulator, error) {
	if opts.CyclesPerFrame <= 0 {
		return nil, fmt.Errorf("invalid cycles per frame %d", opts.CyclesPerFrame)
	}
	if opts.StackLimit < 0 {
		return nil, fmt.Errorf("invalid stack limit %d", opts.StackLimit)
	}

	e := &Emulator{
		logger:      logger,
		options:     opts,
		mem:         memory.New(),
		display:     display.NewDefault(),
		keypad:      input.NewKeypad(),
		breakpoints: set.New[uint16](),
	}
	for _, address := range opts.Breakpoints {
		e.breakpoints.Add(address & memory.AddressMask)
	}

	e.cpu = cpu.New(e.mem, e.display, e.keypad, cpu.Options{
		Quirks:     opts.Quirks,
		StackLimit: opts.StackLimit,
		Random:     cpu.NewRandomSource(opts.Seed),
	})
	e.reset()
	return e, nil
}

// InjectDependencies sets the host collaborators, nil members are ignored
// by the frame loop.
func (e *Emulator) InjectDependencies(deps Dependencies) {
	e.keys = deps.Keys
	e.presenter = deps.Presenter
	e.speaker = deps.Speaker
}

// LoadROM resets the machine and copies the program to the program start.
func (e *Emulator) LoadROM(rom []byte) error {
	if len(rom) == 0 {
		return fmt.Errorf("%w: empty program", ErrInvalidROM)
	}
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: size %d exceeds maximum of %d bytes", ErrInvalidROM, len(rom), MaxROMSize)
	}

	e.reset()
	e.mem.CopyIn(cpu.ProgramStart, rom)

	e.logger.Debug("Loaded ROM",
		log.Int("size", len(rom)),
		log.Hex("address", uint16(cpu.ProgramStart)),
		log.Stringer("quirks", e.options.Quirks),
	)
	return nil
}

func (e *Emulator) reset() {
	e.mem.Clear()
	e.mem.CopyIn(font.StartAddress, font.Glyphs[:])
	e.display.Clear()
	e.keypad.Reset()
	e.cpu.Reset()
	e.resuming = false
	e.frames = 0
}

// RunFrame executes one frame. An error stops the frame before the timers
// are advanced, the CPU keeps the state of the failing instruction.
func (e *Emulator) RunFrame() (Frame, error) {
	var held [input.KeyCount]bool
	if e.keys != nil {
		held = e.keys.HeldKeys()
	}
	e.keypad.Update(held)

	var frame Frame
	if err := e.runCycles(&frame); err != nil {
		frame.Draw = e.cpu.DrawFlag()
		return frame, err
	}

	frame.Draw = e.cpu.DrawFlag()
	frame.Sound = e.cpu.SoundTimer() > 0
	e.cpu.ClearDrawFlag()
	e.cpu.AdvanceTimers()
	e.frames++

	if frame.Draw && e.presenter != nil {
		e.presenter.Present(e.display)
	}
	if e.speaker != nil {
		e.speaker.SetTone(frame.Sound)
	}
	return frame, nil
}

func (e *Emulator) runCycles(frame *Frame) error {
	for range e.options.CyclesPerFrame {
		pc := e.cpu.PC()
		if err := e.checkStop(pc); err != nil {
			return err
		}

		if e.options.Trace {
			opcode := e.cpu.Opcode()
			e.logger.Debug("Executing instruction",
				log.Hex("address", pc),
				log.Hex("opcode", opcode),
				log.String("instruction", chip8.Disassemble(opcode)),
			)
		}

		result, err := e.cpu.Tick()
		if err != nil {
			return fmt.Errorf("executing instruction at address %03X: %w", pc, err)
		}
		if e.cpu.PC() != pc {
			e.resuming = false
		}
		frame.Cycles++

		switch result {
		case cpu.ResultWaitKey:
			e.logger.Debug("Waiting for key release", log.Hex("address", pc))
			return nil
		case cpu.ResultVBlank:
			return nil
		case cpu.ResultContinue:
		}
	}
	return nil
}

// checkStop returns an error if execution has to stop before the
// instruction at the given address.
func (e *Emulator) checkStop(pc uint16) error {
	if e.breakpoints.Contains(pc) && (!e.resuming || e.resumeAt != pc) {
		e.resuming = true
		e.resumeAt = pc
		return &BreakpointError{PC: pc}
	}

	if !e.options.StopOnLoop {
		return nil
	}
	ins, ok := chip8.Decode(e.cpu.Opcode())
	if !ok || !ins.IsJump() {
		return nil
	}
	if target, _ := ins.Target(); target == pc {
		return fmt.Errorf("%w: endless loop at address %03X", ErrHalted, pc)
	}
	return nil
}

// Run executes frames until the given number of frames ran, an error
// occurred or the context got cancelled. A frame count of 0 runs until
// an error or cancellation. It returns the number of completed frames.
func (e *Emulator) Run(ctx context.Context, frames int) (int, error) {
	completed := 0
	for frames == 0 || completed < frames {
		if err := ctx.Err(); err != nil {
			return completed, fmt.Errorf("running frame %d: %w", completed, err)
		}
		if _, err := e.RunFrame(); err != nil {
			return completed, err
		}
		completed++
	}
	return completed, nil
}

// IsStop returns whether the error ends a run without being a failure
// of the program.
func IsStop(err error) bool {
	return errors.Is(err, ErrBreakpoint) || errors.Is(err, ErrHalted) ||
		errors.Is(err, context.Canceled)
}

// CPU returns the interpreter core.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// Display returns the display buffer.
func (e *Emulator) Display() *display.Buffer {
	return e.display
}

// Memory returns the memory.
func (e *Emulator) Memory() *memory.Memory {
	return e.mem
}

// Frames returns the number of frames completed since the last ROM load.
func (e *Emulator) Frames() uint64 {
	return e.frames
}
