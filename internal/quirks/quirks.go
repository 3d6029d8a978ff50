// Package quirks contains the configurable instruction behavior variants
// that historical CHIP-8 interpreters disagree on.
package quirks

import (
	"fmt"
	"sort"
	"strings"
)

// Quirks selects the behavior of specific instructions. The zero value
// disables all quirks. A Quirks value is fixed for the lifetime of a CPU.
type Quirks struct {
	// SaveLoadIncrement advances I by X+1 after FX55 and FX65.
	SaveLoadIncrement bool
	// VFReset zeroes VF after the 8XY1, 8XY2 and 8XY3 logic instructions.
	VFReset bool
	// Clipping drops sprite pixels that would cross the right or bottom edge
	// instead of wrapping them to the opposite side.
	Clipping bool
	// Shifting uses VY as the operand of 8XY6 and 8XYE instead of VX.
	Shifting bool
	// DisplayWait ends the instruction loop of a frame after a sprite draw.
	DisplayWait bool
}

// Preset names.
const (
	PresetChip8  = "chip8"
	PresetModern = "modern"
	PresetNone   = "none"
)

var presets = map[string]Quirks{
	// behavior of the original COSMAC VIP interpreter
	PresetChip8: {
		SaveLoadIncrement: true,
		VFReset:           true,
		Clipping:          true,
		Shifting:          true,
		DisplayWait:       true,
	},
	// behavior most modern ROMs expect
	PresetModern: {
		Clipping: true,
	},
	PresetNone: {},
}

// Chip8 returns the quirks of the original COSMAC VIP interpreter.
func Chip8() Quirks {
	return presets[PresetChip8]
}

// Modern returns the quirks that most modern ROMs expect.
func Modern() Quirks {
	return presets[PresetModern]
}

// FromString returns the quirks of the named preset.
func FromString(name string) (Quirks, error) {
	q, ok := presets[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unsupported quirks preset: %s. Valid options: %s",
			name, strings.Join(Names(), ", "))
	}
	return q, nil
}

// Names returns the sorted names of all presets.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names of the individual quirks.
const (
	NameSaveLoadIncrement = "save_load_increment"
	NameVFReset           = "vf_reset"
	NameClipping          = "clipping"
	NameShifting          = "shifting"
	NameDisplayWait       = "display_wait"
)

// QuirkNames returns the names of the individual quirks in field order.
func QuirkNames() []string {
	return []string{NameSaveLoadIncrement, NameVFReset, NameClipping, NameShifting, NameDisplayWait}
}

func (q *Quirks) fields() []*bool {
	return []*bool{&q.SaveLoadIncrement, &q.VFReset, &q.Clipping, &q.Shifting, &q.DisplayWait}
}

// Set enables or disables the named quirk.
func (q *Quirks) Set(name string, enabled bool) error {
	fields := q.fields()
	for i, quirk := range QuirkNames() {
		if quirk == name {
			*fields[i] = enabled
			return nil
		}
	}
	return fmt.Errorf("unsupported quirk: %s. Valid options: %s",
		name, strings.Join(QuirkNames(), ", "))
}

// String returns a compact representation of the enabled quirks.
func (q Quirks) String() string {
	var enabled []string
	fields := q.fields()
	for i, name := range QuirkNames() {
		if *fields[i] {
			enabled = append(enabled, name)
		}
	}
	if len(enabled) == 0 {
		return PresetNone
	}
	return strings.Join(enabled, ",")
}
