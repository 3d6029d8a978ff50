// Package config handles application configuration and setup
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateEmulatorOptions converts the program options to emulator options.
func CreateEmulatorOptions(opts options.Program) (options.Emulator, error) {
	emuOptions := options.NewEmulator()

	q, err := ResolveQuirks(opts.Quirks, opts.Overrides)
	if err != nil {
		return options.Emulator{}, err
	}
	emuOptions.Quirks = q

	if opts.Cycles <= 0 {
		return options.Emulator{}, fmt.Errorf("invalid cycles per frame %d", opts.Cycles)
	}
	emuOptions.CyclesPerFrame = opts.Cycles

	if opts.StackLimit < 0 {
		return options.Emulator{}, fmt.Errorf("invalid stack limit %d", opts.StackLimit)
	}
	emuOptions.StackLimit = opts.StackLimit

	emuOptions.Breakpoints, err = ParseAddresses(opts.Breakpoints)
	if err != nil {
		return options.Emulator{}, fmt.Errorf("parsing breakpoints: %w", err)
	}

	emuOptions.Seed = opts.Seed
	emuOptions.Trace = opts.Trace
	emuOptions.StopOnLoop = opts.StopOnLoop
	return emuOptions, nil
}

// ResolveQuirks returns the quirks of the named preset with the
// overrides applied.
func ResolveQuirks(preset string, overrides map[string]bool) (quirks.Quirks, error) {
	if preset == "" {
		preset = quirks.PresetChip8
	}
	q, err := quirks.FromString(preset)
	if err != nil {
		return quirks.Quirks{}, err
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := q.Set(name, overrides[name]); err != nil {
			return quirks.Quirks{}, err
		}
	}
	return q, nil
}

// ParseAddresses parses a comma separated list of hexadecimal addresses.
// An address can be prefixed by 0x or $.
func ParseAddresses(list string) ([]uint16, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, field := range strings.Split(list, ",") {
		s := strings.TrimSpace(field)
		s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "$")

		value, err := strconv.ParseUint(s, 16, 16)
		if err != nil || value > memory.AddressMask {
			return nil, fmt.Errorf("invalid address '%s'", strings.TrimSpace(field))
		}
		addresses = append(addresses, uint16(value))
	}
	return addresses, nil
}
