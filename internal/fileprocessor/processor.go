// Package fileprocessor handles ROM loading and the headless run of a program
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM file of the options and runs it for the
// configured number of frames. The display is written to out if a dump
// was requested. Breakpoints and endless loops end the run without error.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	emuOptions, err := config.CreateEmulatorOptions(opts)
	if err != nil {
		return fmt.Errorf("creating emulator options: %w", err)
	}

	emu, err := emulator.New(logger, emuOptions)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}
	if err := emu.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM into memory: %w", err)
	}

	printInfo(logger, opts, emuOptions, len(rom))

	stats := &frameStats{}
	emu.InjectDependencies(emulator.Dependencies{
		Presenter: stats,
		Speaker:   stats,
	})

	frames, runErr := emu.Run(ctx, opts.Frames)

	if !opts.Quiet {
		logger.Info("Execution finished",
			log.Int("frames", frames),
			log.Int("draws", stats.draws),
			log.Int("sound_frames", stats.soundFrames),
			log.Hex("pc", emu.CPU().PC()),
		)
	}

	if opts.Dump {
		if err := dumpDisplay(out, emu.Display()); err != nil {
			return fmt.Errorf("dumping display: %w", err)
		}
	}

	return handleRunError(logger, emu, runErr)
}

func handleRunError(logger *log.Logger, emu *emulator.Emulator, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return err
	case emulator.IsStop(err):
		logger.Info("Execution stopped", log.String("reason", err.Error()))
		logState(logger, emu)
		return nil
	default:
		logState(logger, emu)
		return fmt.Errorf("running ROM: %w", err)
	}
}

func logState(logger *log.Logger, emu *emulator.Emulator) {
	state := emu.CPU().State()

	registers := make([]string, len(state.V))
	for i, value := range state.V {
		registers[i] = fmt.Sprintf("V%X=%02X", i, value)
	}

	logger.Debug("CPU state",
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.String("registers", strings.Join(registers, " ")),
		log.Int("stack_depth", len(state.Stack)),
		log.Uint8("delay_timer", state.DelayTimer),
		log.Uint8("sound_timer", state.SoundTimer),
	)
}

func dumpDisplay(out io.Writer, buf *display.Buffer) error {
	_, err := fmt.Fprint(out, buf.String())
	return err
}

// printInfo prints the information about the input file and the emulation settings.
func printInfo(logger *log.Logger, opts options.Program, emuOptions options.Emulator, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.Stringer("quirks", emuOptions.Quirks),
		log.Int("cycles_per_frame", emuOptions.CyclesPerFrame),
	)
	if opts.Frames == 0 {
		logger.Info("Running until interrupted")
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// frameStats counts presented frames and frames with an active tone.
type frameStats struct {
	draws       int
	soundFrames int
}

func (s *frameStats) Present(_ display.Display) {
	s.draws++
}

func (s *frameStats) SetTone(on bool) {
	if on {
		s.soundFrames++
	}
}
