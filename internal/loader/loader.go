// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/emulator"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at the given path. The file has to be a raw
// CHIP-8 program that fits into the program space.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return rom, nil
}

// LoadFromReader reads a ROM from the reader, at most one byte more than
// the maximum ROM size is consumed.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, emulator.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	switch {
	case len(rom) == 0:
		return nil, fmt.Errorf("%w: empty program", emulator.ErrInvalidROM)
	case len(rom) > emulator.MaxROMSize:
		return nil, fmt.Errorf("%w: size exceeds maximum of %d bytes", emulator.ErrInvalidROM, emulator.MaxROMSize)
	}
	return rom, nil
}
