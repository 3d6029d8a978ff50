// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
)

var quirkUsage = map[string]string{
	quirks.NameSaveLoadIncrement: "FX55/FX65 increment I",
	quirks.NameVFReset:           "8XY1/8XY2/8XY3 reset VF",
	quirks.NameClipping:          "sprites are clipped at the screen edges instead of wrapping",
	quirks.NameShifting:          "8XY6/8XYE shift VY instead of VX",
	quirks.NameDisplayWait:       "sprite drawing waits for the next frame",
}

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {} // usage is shown by the caller
	var opts options.Program
	readOptionFlags(flags, &opts)
	quirkFlags := readQuirkFlags(flags)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	// parse errors are printed by the flag set
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	opts.Overrides = map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		if enabled, ok := quirkFlags[f.Name]; ok {
			opts.Overrides[f.Name] = *enabled
		}
	})

	normalizeOptions(&opts)
	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes option values
func normalizeOptions(opts *options.Program) {
	opts.Quirks = strings.ToLower(strings.TrimSpace(opts.Quirks))

	// instruction traces are logged at debug level
	if opts.Trace {
		opts.Debug = true
	}
}

// validateOptionCombinations checks for options that can not be used together
func validateOptionCombinations(opts options.Program) error {
	if opts.Trace && opts.Quiet {
		return errors.New("-trace can not be combined with -q")
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Quirks, "quirks", quirks.PresetChip8,
		fmt.Sprintf("quirks preset (%s)", strings.Join(quirks.Names(), "/")))
	flags.IntVar(&opts.Frames, "frames", 600, "number of 60 Hz frames to run, 0 runs until interrupted")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCyclesPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.StackLimit, "stack", 0, "maximum call stack depth, 0 for unlimited")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 for a random seed")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hexadecimal breakpoint addresses, for example 0x200,2A4")
	flags.BoolVar(&opts.StopOnLoop, "stop-on-loop", false, "stop when the program jumps to its own address")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Dump, "dump", false, "print the display after the last frame")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// readQuirkFlags registers a boolean flag per quirk. Only flags that are
// passed on the command line override the preset.
func readQuirkFlags(flags *flag.FlagSet) map[string]*bool {
	quirkFlags := make(map[string]*bool, len(quirkUsage))
	for _, name := range quirks.QuirkNames() {
		quirkFlags[name] = flags.Bool(name, false, "override preset: "+quirkUsage[name])
	}
	return quirkFlags
}
